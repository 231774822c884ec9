// Package artworks provides the artwork domain model and the single-page
// fetcher for the Art Institute of Chicago public API.
package artworks

// Record is a single artwork as returned by the API.
// Records are value types and are never mutated after decoding;
// ID is the identity key used for deduplication.
type Record struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	PlaceOfOrigin string  `json:"place_of_origin"`
	ArtistDisplay string  `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

// Page is the outcome of fetching one page of artworks.
type Page struct {
	// Items are the records of this page, in API order.
	Items []Record

	// CurrentPage is the 1-based page number the API reported.
	CurrentPage int

	// TotalPages is the total number of pages available.
	TotalPages int

	// TotalRecords is the total number of records across all pages.
	TotalRecords int
}

// HasMorePages returns true if pages beyond CurrentPage exist.
func (p *Page) HasMorePages() bool {
	return p.CurrentPage < p.TotalPages
}

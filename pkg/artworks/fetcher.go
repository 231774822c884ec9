package artworks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rkoenig/artic-client/pkg/client"
)

// DefaultPageSize is the number of records requested per page.
const DefaultPageSize = 12

// ErrMalformedPayload indicates a response body without the expected
// "data" field.
var ErrMalformedPayload = errors.New("response payload missing data field")

// recordFields is the field list requested from the API.
// Requesting only the columns we render keeps payloads small.
var recordFields = strings.Join([]string{
	"id",
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}, ",")

// FetchError reports a failed page fetch. The request is attempted once;
// a failure terminates the in-flight operation.
type FetchError struct {
	Page int
	Err  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch artworks page %d: %v", e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// PageFetcher is the contract the selector and the view driver depend on.
// Page numbers are 1-based per the API's convention.
type PageFetcher interface {
	Fetch(ctx context.Context, page int) (*Page, error)
}

// Fetcher retrieves single pages of artworks over HTTP.
type Fetcher struct {
	client   *client.Client
	pageSize int
	logger   zerolog.Logger
}

// NewFetcher creates a page fetcher on top of an ARTIC client.
// A non-positive pageSize falls back to DefaultPageSize.
func NewFetcher(c *client.Client, pageSize int) *Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Fetcher{
		client:   c,
		pageSize: pageSize,
		logger:   log.With().Str("component", "artworks-fetcher").Logger(),
	}
}

// PageSize returns the number of records requested per page.
func (f *Fetcher) PageSize() int {
	return f.pageSize
}

// Fetch retrieves one page of artworks and its pagination metadata.
func (f *Fetcher) Fetch(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, &FetchError{Page: page, Err: fmt.Errorf("page must be >= 1, got %d", page)}
	}

	query := url.Values{
		"page":   []string{strconv.Itoa(page)},
		"limit":  []string{strconv.Itoa(f.pageSize)},
		"fields": []string{recordFields},
	}

	resp, err := f.client.Get(ctx, "/artworks", query)
	if err != nil {
		return nil, &FetchError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	var payload struct {
		// Pointer distinguishes an absent data field from an empty page.
		Data       *[]Record `json:"data"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
			Total       int `json:"total"`
		} `json:"pagination"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Page: page, Err: fmt.Errorf("decode payload: %w", err)}
	}

	if payload.Data == nil {
		return nil, &FetchError{Page: page, Err: ErrMalformedPayload}
	}

	result := &Page{
		Items:        *payload.Data,
		CurrentPage:  payload.Pagination.CurrentPage,
		TotalPages:   payload.Pagination.TotalPages,
		TotalRecords: payload.Pagination.Total,
	}
	if result.CurrentPage == 0 {
		result.CurrentPage = page
	}

	f.logger.Debug().
		Int("page", result.CurrentPage).
		Int("items", len(result.Items)).
		Int("total_pages", result.TotalPages).
		Int("total_records", result.TotalRecords).
		Msg("Fetched artworks page")

	return result, nil
}

// Package testutil provides testing utilities for the ARTIC client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/rkoenig/artic-client/pkg/artworks"
)

// MockArtic is a configurable in-process ARTIC API server for tests.
// Pages are defined up front; the reported total_pages is the number of
// defined pages and total is the sum of their item counts.
type MockArtic struct {
	server *httptest.Server

	mu             sync.Mutex
	pages          [][]artworks.Record
	failPages      map[int]int
	malformedPages map[int]bool
	requestedPages []int
}

// NewMockArtic creates a mock server serving the given pages in order.
func NewMockArtic(pages [][]artworks.Record) *MockArtic {
	mock := &MockArtic{
		pages:          pages,
		failPages:      make(map[int]int),
		malformedPages: make(map[int]bool),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server base URL, usable as client.Config.BaseURL.
func (m *MockArtic) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockArtic) Close() {
	m.server.Close()
}

// FailPage makes requests for the given 1-based page fail with an HTTP status.
func (m *MockArtic) FailPage(page, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPages[page] = status
}

// MalformPage makes the given page respond 200 with a body missing the
// data field.
func (m *MockArtic) MalformPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.malformedPages[page] = true
}

// RequestedPages returns the 1-based page numbers requested, in order.
func (m *MockArtic) RequestedPages() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := make([]int, len(m.requestedPages))
	copy(pages, m.requestedPages)
	return pages
}

// RequestCount returns the number of requests served.
func (m *MockArtic) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requestedPages)
}

func (m *MockArtic) handle(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	m.mu.Lock()
	m.requestedPages = append(m.requestedPages, page)
	failStatus := m.failPages[page]
	malformed := m.malformedPages[page]
	totalPages := len(m.pages)
	total := 0
	for _, p := range m.pages {
		total += len(p)
	}
	var items []artworks.Record
	if page >= 1 && page <= totalPages {
		items = m.pages[page-1]
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if failStatus != 0 {
		w.WriteHeader(failStatus)
		fmt.Fprintf(w, `{"error": "simulated failure", "status": %d}`, failStatus)
		return
	}

	if malformed {
		fmt.Fprintf(w, `{"pagination": {"current_page": %d, "total_pages": %d, "total": %d}}`,
			page, totalPages, total)
		return
	}

	if items == nil {
		items = []artworks.Record{}
	}

	body := struct {
		Data       []artworks.Record `json:"data"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
			Total       int `json:"total"`
		} `json:"pagination"`
	}{Data: items}
	body.Pagination.CurrentPage = page
	body.Pagination.TotalPages = totalPages
	body.Pagination.Total = total

	_ = json.NewEncoder(w).Encode(body)
}

// Records generates count sequential records starting at startID.
func Records(startID, count int) []artworks.Record {
	records := make([]artworks.Record, 0, count)
	for i := 0; i < count; i++ {
		id := startID + i
		records = append(records, artworks.Record{
			ID:            id,
			Title:         fmt.Sprintf("Artwork %d", id),
			PlaceOfOrigin: "Chicago",
			ArtistDisplay: fmt.Sprintf("Artist %d", id),
		})
	}
	return records
}

// Package grid drives an externally owned tabular UI surface with paginated
// artwork data and bulk selection.
//
// The driver owns the view state (rows, total count, current page, loading
// flag, selection) and mutates it only through its own transition methods.
// It translates the surface's zero-based page indices into the API's
// 1-based pages.
package grid

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rkoenig/artic-client/pkg/artworks"
	"github.com/rkoenig/artic-client/pkg/selector"
)

// Surface is the externally owned tabular UI the driver projects into.
// Implementations render; they never fetch.
type Surface interface {
	// Render replaces the displayed page. pageIndex is zero-based.
	Render(rows []artworks.Record, totalRecords int, pageIndex int)

	// Select replaces the displayed selection.
	Select(rows []artworks.Record)
}

// Notifier receives user-facing diagnostic notices from the driver.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Warn(string)  {}
func (NopNotifier) Error(string) {}

// Driver translates surface events into fetches and projects the results
// back into the surface.
//
// Driver methods are not safe for concurrent use: the hosting surface's
// event loop is expected to serialize calls, matching the single-threaded
// cooperative model of the UI. A selection walk triggered while the view
// paginates proceeds independently with no mutual exclusion.
type Driver struct {
	fetcher  artworks.PageFetcher
	surface  Surface
	notifier Notifier
	selOpts  selector.Options
	logger   zerolog.Logger

	// View state. Mutated only via the transition methods below.
	loading      bool
	pageIndex    int
	totalRecords int
	rows         []artworks.Record
	selection    []artworks.Record
}

// NewDriver creates a view driver. A nil notifier discards notices.
func NewDriver(fetcher artworks.PageFetcher, surface Surface, notifier Notifier, selOpts selector.Options) (*Driver, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("page fetcher is required")
	}
	if surface == nil {
		return nil, fmt.Errorf("surface is required")
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Driver{
		fetcher:  fetcher,
		surface:  surface,
		notifier: notifier,
		selOpts:  selOpts,
		logger:   log.With().Str("component", "grid-driver").Logger(),
	}, nil
}

// Loading reports whether a page load is in flight.
func (d *Driver) Loading() bool { return d.loading }

// PageIndex returns the zero-based index of the displayed page.
func (d *Driver) PageIndex() int { return d.pageIndex }

// TotalRecords returns the record count the source last reported.
func (d *Driver) TotalRecords() int { return d.totalRecords }

// Rows returns the displayed rows.
func (d *Driver) Rows() []artworks.Record { return d.rows }

// Selection returns the current selection.
func (d *Driver) Selection() []artworks.Record { return d.selection }

// LoadFirstPage loads page 1 into the surface. Call once on mount.
func (d *Driver) LoadFirstPage(ctx context.Context) {
	d.HandlePageChange(ctx, 0)
}

// HandlePageChange loads the requested page. zeroBasedPage comes from the
// surface's pagination control; the API counts from 1.
//
// A fetch failure is recovered locally: logged, reported via the notifier,
// loading cleared, and the displayed state left unchanged.
func (d *Driver) HandlePageChange(ctx context.Context, zeroBasedPage int) {
	d.setLoading(true)
	defer d.setLoading(false)

	page, err := d.fetcher.Fetch(ctx, zeroBasedPage+1)
	if err != nil {
		d.logger.Error().
			Err(err).
			Int("page_index", zeroBasedPage).
			Msg("Page load failed")
		d.notifier.Error(fmt.Sprintf("failed to load page %d", zeroBasedPage+1))
		return
	}

	d.applyPage(page, zeroBasedPage)
}

// HandleSelectionChanged records a selection made directly on the surface.
func (d *Driver) HandleSelectionChanged(records []artworks.Record) {
	d.selection = records
	d.logger.Debug().Int("selected", len(records)).Msg("Surface selection changed")
}

// HandleSelectCount runs the bounded multi-page selection for a free-text
// target. Invalid input is reported without invoking the fetcher; a failed
// or exhausted walk still applies whatever was collected.
func (d *Driver) HandleSelectCount(ctx context.Context, raw string) {
	target, err := selector.ParseTarget(raw)
	if err != nil {
		d.logger.Warn().Err(err).Str("input", raw).Msg("Rejected selection target")
		d.notifier.Error(fmt.Sprintf("invalid selection count %q: enter a positive number", raw))
		return
	}

	result := selector.SelectFirstN(ctx, target, d.fetcher, d.selOpts)
	d.applySelection(result.Records)

	switch result.Outcome {
	case selector.OutcomeSatisfied:
		d.notifier.Info(fmt.Sprintf("selected %d artworks", len(result.Records)))
	case selector.OutcomeExhausted:
		d.notifier.Warn(fmt.Sprintf("only %d of %d artworks available - selected them all",
			len(result.Records), target))
	case selector.OutcomeShortPage:
		d.notifier.Warn(fmt.Sprintf("selected %d of %d artworks (duplicates cut the last page short)",
			len(result.Records), target))
	case selector.OutcomeFailed:
		d.notifier.Error(fmt.Sprintf("selection stopped after %d of %d artworks: %v",
			len(result.Records), target, result.Err))
	}
}

// setLoading is the loading-flag transition.
func (d *Driver) setLoading(loading bool) {
	d.loading = loading
}

// applyPage is the page transition: update state, then project into the
// surface. Never called on a failed fetch.
func (d *Driver) applyPage(page *artworks.Page, zeroBasedPage int) {
	d.rows = page.Items
	d.totalRecords = page.TotalRecords
	d.pageIndex = zeroBasedPage
	d.surface.Render(d.rows, d.totalRecords, d.pageIndex)
}

// applySelection is the selection transition.
func (d *Driver) applySelection(records []artworks.Record) {
	d.selection = records
	d.surface.Select(records)
}

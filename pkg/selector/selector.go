package selector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/rkoenig/artic-client/pkg/artworks"
)

// Prometheus metrics for selection walks.
var (
	selectorWalksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selector_walks_total",
		Help: "Total selection walks by outcome",
	}, []string{"outcome"})

	selectorPagesPerWalk = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "selector_pages_per_walk",
		Help:    "Pages fetched per selection walk",
		Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
	})

	selectorDuplicatesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selector_duplicates_skipped_total",
		Help: "Records skipped because their ID was already accumulated",
	})
)

// ErrInvalidTarget indicates a selection target that is not a positive
// integer. The fetcher is never called for such targets.
var ErrInvalidTarget = errors.New("selection target must be a positive integer")

// Outcome describes how a selection walk ended.
type Outcome string

const (
	// OutcomeSatisfied means the accumulator reached the target count.
	OutcomeSatisfied Outcome = "satisfied"

	// OutcomeExhausted means the source ran out of pages before the target
	// was reached. Reportable, not fatal; the partial set is returned.
	OutcomeExhausted Outcome = "exhausted"

	// OutcomeShortPage means the walk stopped on a page whose raw item
	// count met the remaining need but deduplication left the accumulator
	// short. This preserves the historical walk behavior; see
	// Options.ContinueOnShortPage for the corrected variant.
	OutcomeShortPage Outcome = "short_page"

	// OutcomeFailed means a page fetch failed or the target was invalid.
	// Records accumulated before the failure are still returned.
	OutcomeFailed Outcome = "failed"
)

// walkState models the walk as an explicit state machine.
type walkState int

const (
	stateFetching walkState = iota
	stateAccumulating
	stateSatisfied
	stateExhausted
	stateShortPage
	stateFailed
)

// Options tunes the selection walk.
type Options struct {
	// ContinueOnShortPage keeps the walk advancing to the next page when a
	// page's raw item count met the remaining need but duplicates left the
	// accumulator short of the target. The default (false) stops the walk
	// on such a page, matching the historical behavior.
	ContinueOnShortPage bool
}

// Result is the outcome of a selection walk. Records is always usable,
// even when Outcome is OutcomeFailed.
type Result struct {
	// Records are the selected artworks: at most the target count, unique
	// by ID, in the order first encountered while scanning from page 1.
	Records []artworks.Record

	// Outcome describes how the walk ended.
	Outcome Outcome

	// PagesFetched is the number of fetch calls performed.
	PagesFetched int

	// Err carries the diagnostic cause for OutcomeFailed; nil otherwise.
	Err error
}

// Satisfied reports whether the walk collected the full target count.
func (r *Result) Satisfied() bool {
	return r.Outcome == OutcomeSatisfied
}

// ParseTarget validates a free-text selection target.
func ParseTarget(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidTarget, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTarget, n)
	}
	return n, nil
}

// SelectFirstN walks pages sequentially starting at page 1 and accumulates
// up to target records unique by ID, in first-seen order.
//
// A fetch failure terminates the walk and returns the partial accumulator;
// no error propagates beyond Result.Err. Source exhaustion before reaching
// the target is reported via OutcomeExhausted and is not an error.
func SelectFirstN(ctx context.Context, target int, fetcher artworks.PageFetcher, opts Options) Result {
	logger := log.With().Str("component", "selector").Logger()

	if target <= 0 {
		logger.Warn().Int("target", target).Msg("Rejected invalid selection target")
		selectorWalksTotal.WithLabelValues(string(OutcomeFailed)).Inc()
		return Result{
			Outcome: OutcomeFailed,
			Err:     fmt.Errorf("%w: got %d", ErrInvalidTarget, target),
		}
	}

	acc := make([]artworks.Record, 0, target)
	seen := make(map[int]struct{}, target)
	pageCursor := 1
	pagesFetched := 0
	duplicates := 0

	var page *artworks.Page
	var walkErr error

	state := stateFetching
	for state == stateFetching || state == stateAccumulating {
		switch state {
		case stateFetching:
			page, walkErr = fetcher.Fetch(ctx, pageCursor)
			pagesFetched++
			if walkErr != nil {
				state = stateFailed
				break
			}
			state = stateAccumulating

		case stateAccumulating:
			remaining := target - len(acc)
			rawCount := len(page.Items)

			appended := 0
			for _, rec := range page.Items {
				if appended >= remaining {
					break
				}
				if _, dup := seen[rec.ID]; dup {
					duplicates++
					continue
				}
				seen[rec.ID] = struct{}{}
				acc = append(acc, rec)
				appended++
			}

			logger.Debug().
				Int("page", pageCursor).
				Int("raw_items", rawCount).
				Int("appended", appended).
				Int("accumulated", len(acc)).
				Int("target", target).
				Msg("Accumulated page")

			switch {
			case len(acc) >= target:
				state = stateSatisfied
			case rawCount < remaining && !page.HasMorePages():
				state = stateExhausted
			case rawCount < remaining:
				pageCursor++
				state = stateFetching
			case !page.HasMorePages():
				// Page looked sufficient by raw count, duplicates left us
				// short, and no further pages exist.
				state = stateExhausted
			case opts.ContinueOnShortPage:
				pageCursor++
				state = stateFetching
			default:
				state = stateShortPage
			}
		}
	}

	selectorDuplicatesSkippedTotal.Add(float64(duplicates))
	selectorPagesPerWalk.Observe(float64(pagesFetched))

	result := Result{
		Records:      acc,
		PagesFetched: pagesFetched,
	}

	switch state {
	case stateSatisfied:
		result.Outcome = OutcomeSatisfied
		logger.Info().
			Int("target", target).
			Int("pages", pagesFetched).
			Int("duplicates_skipped", duplicates).
			Msg("Selection satisfied")

	case stateExhausted:
		result.Outcome = OutcomeExhausted
		logger.Warn().
			Int("target", target).
			Int("collected", len(acc)).
			Int("pages", pagesFetched).
			Msg("Source exhausted before reaching target")

	case stateShortPage:
		result.Outcome = OutcomeShortPage
		logger.Warn().
			Int("target", target).
			Int("collected", len(acc)).
			Int("pages", pagesFetched).
			Int("duplicates_skipped", duplicates).
			Msg("Walk stopped on a short page (duplicates ate into the page)")

	case stateFailed:
		result.Outcome = OutcomeFailed
		result.Err = walkErr
		logger.Warn().
			Err(walkErr).
			Int("target", target).
			Int("collected", len(acc)).
			Int("pages", pagesFetched).
			Msg("Fetch failed - returning partial selection")
	}

	selectorWalksTotal.WithLabelValues(string(result.Outcome)).Inc()
	return result
}

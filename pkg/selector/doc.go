// Package selector implements the bounded multi-page artwork selection walk.
//
// Given a target count N, the selector walks pages sequentially starting at
// page 1, accumulating records unique by ID in first-seen order, until N
// records are collected, the source runs out of pages, or a fetch fails.
// Each page fetch is awaited to completion before the next begins; later
// pages are only requested once earlier pages are known to be insufficient.
//
// Example usage:
//
//	result := selector.SelectFirstN(ctx, 20, fetcher, selector.Options{})
//	switch result.Outcome {
//	case selector.OutcomeSatisfied:
//		// result.Records holds exactly 20 unique records
//	case selector.OutcomeExhausted:
//		// fewer than 20 unique records exist; result.Records holds them all
//	case selector.OutcomeFailed:
//		// a page fetch failed; result.Records holds the partial set
//	}
//
// The walk:
//   - Never calls the fetcher for an invalid target
//   - Deduplicates by record ID across pages (first-seen wins)
//   - Returns partial results instead of propagating fetch errors
//   - Performs fetches strictly sequentially, never concurrently
package selector

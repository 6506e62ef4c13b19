package youtube

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// ErrPageLimit is returned when a listing needs more pages than the configured cap.
var ErrPageLimit = errors.New("youtube: page limit exceeded")

// Page is one response of a cursor-paginated listing.
type Page[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// PageFetcher loads the page addressed by pageToken; the first page uses "".
type PageFetcher[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// Pages lazily walks a listing, feeding every continuation token into the next
// fetch. It always fetches at least one page and stops at the first page
// without a token. Each range over the sequence starts again from page one.
// A maxPages of 0 leaves the walk unbounded.
func Pages[T any](ctx context.Context, fetch PageFetcher[T], maxPages int) iter.Seq2[Page[T], error] {
	return func(yield func(Page[T], error) bool) {
		token := ""
		for fetched := 0; ; fetched++ {
			if maxPages > 0 && fetched >= maxPages {
				yield(Page[T]{}, fmt.Errorf("%w: stopped after %d pages", ErrPageLimit, maxPages))
				return
			}

			page, err := fetch(ctx, token)
			if err != nil {
				yield(Page[T]{}, err)
				return
			}
			if !yield(page, nil) {
				return
			}

			token = page.NextPageToken
			if token == "" {
				return
			}
		}
	}
}

// CollectAll materializes every item of a listing in page order, calling
// onPage (when non-nil) after each page is accumulated.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T], maxPages int, onPage func(Page[T])) ([]T, error) {
	var items []T
	for page, err := range Pages(ctx, fetch, maxPages) {
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if onPage != nil {
			onPage(page)
		}
	}
	return items, nil
}

package ingest

import (
	"context"
	"osu-dumper/internal/domain"
)

// walker pages through a user's most played maps. It is single use: once next
// reports the end, every later call reports the end too.
type walker struct {
	src      Source
	throttle Throttler
	gate     *Gate

	userID int64
	limit  int
	offset int

	done      bool
	cancelled bool

	onPage func(fetched, offset int)
}

func newWalker(src Source, throttle Throttler, gate *Gate, userID int64, limit, offset int) *walker {
	return &walker{
		src:      src,
		throttle: throttle,
		gate:     gate,
		userID:   userID,
		limit:    limit,
		offset:   offset,
	}
}

// next returns the next non-empty page. ok is false once the source returned an
// empty page or cancellation was requested before the fetch.
func (w *walker) next(ctx context.Context) (page []domain.MostPlayed, ok bool, err error) {
	if w.done {
		return nil, false, nil
	}
	if w.gate.Cancelled() {
		w.done = true
		w.cancelled = true
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		w.done = true
		return nil, false, err
	}

	page, err = w.src.MostPlayed(ctx, w.userID, w.limit, w.offset)
	if err != nil {
		w.done = true
		return nil, false, &ExternalSourceError{Op: "fetch most played", Err: err}
	}

	// the source does not return totals, an empty page is the only end marker
	w.offset += len(page)
	if w.onPage != nil {
		w.onPage(len(page), w.offset)
	}
	if len(page) == 0 {
		w.done = true
		return nil, false, nil
	}

	if err := w.throttle.Wait(ctx); err != nil {
		w.done = true
		return nil, false, err
	}
	return page, true, nil
}

package state

import (
	"context"
	"errors"

	"github.com/five82/popcorn/internal/omdb"
)

// User-facing error messages.
const (
	MsgNotFound    = "Movie not Found"
	MsgFetchFailed = "Something went wrong with fetching movies"
)

// MessageFor maps a fetch error to the text shown in place of results.
// Cancellation maps to "" because it is never shown.
func MessageFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, omdb.ErrNotFound):
		return MsgNotFound
	default:
		return MsgFetchFailed
	}
}

// inflight tracks the single outstanding request of one kind. Each new
// request bumps gen and cancels its predecessor.
type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

func (f *inflight) supersede(parent context.Context) (context.Context, uint64) {
	f.stop()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel
	return ctx, f.gen
}

// stop cancels the outstanding request, if any, and invalidates its generation.
func (f *inflight) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}

func (f *inflight) current(gen uint64) bool {
	return gen == f.gen
}

// finish releases the context of the current request once its result is in.
func (f *inflight) finish(gen uint64) {
	if gen == f.gen && f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// SearchRequest is one issued search. It carries its own cancellation token.
type SearchRequest struct {
	Query string
	gen   uint64
	ctx   context.Context
}

// SearchResult is what a SearchRequest produced.
type SearchResult struct {
	Query  string
	Movies []omdb.Movie
	Err    error
	gen    uint64
}

// Do runs the search. It blocks and is meant to run off the UI loop.
func (r *SearchRequest) Do(s omdb.Searcher) SearchResult {
	if err := r.ctx.Err(); err != nil {
		return SearchResult{Query: r.Query, Err: err, gen: r.gen}
	}
	movies, err := s.Search(r.ctx, r.Query)
	if err == nil {
		// A cancel that raced a successful response still loses.
		err = r.ctx.Err()
	}
	return SearchResult{Query: r.Query, Movies: movies, Err: err, gen: r.gen}
}

// Cancelled reports whether the request was superseded or otherwise cancelled.
func (r *SearchRequest) Cancelled() bool {
	return r.ctx.Err() != nil
}

// DetailRequest is one issued details lookup.
type DetailRequest struct {
	IMDbID string
	gen    uint64
	ctx    context.Context
}

// DetailResult is what a DetailRequest produced.
type DetailResult struct {
	IMDbID  string
	Details *omdb.Details
	Err     error
	gen     uint64
}

// Do runs the lookup. It blocks and is meant to run off the UI loop.
func (r *DetailRequest) Do(s omdb.Searcher) DetailResult {
	if err := r.ctx.Err(); err != nil {
		return DetailResult{IMDbID: r.IMDbID, Err: err, gen: r.gen}
	}
	d, err := s.Details(r.ctx, r.IMDbID)
	if err == nil {
		err = r.ctx.Err()
	}
	return DetailResult{IMDbID: r.IMDbID, Details: d, Err: err, gen: r.gen}
}

// Cancelled reports whether the lookup was superseded or otherwise cancelled.
func (r *DetailRequest) Cancelled() bool {
	return r.ctx.Err() != nil
}

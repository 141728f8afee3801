package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/watchlist"
)

// Snapshot is a read-only copy of everything the UI renders.
type Snapshot struct {
	Query   string
	Movies  []omdb.Movie
	Loading bool
	Error   string

	SelectedID    string
	Detail        *omdb.Details
	DetailLoading bool
	DetailError   string

	Watched []watchlist.Entry
	Summary watchlist.Summary

	LastSaveError error
}

// HasSelection reports whether the detail view is open.
func (s Snapshot) HasSelection() bool {
	return s.SelectedID != ""
}

// WatchedRating returns the user's rating for id if it is on the watched list.
func (s Snapshot) WatchedRating(id string) (int, bool) {
	for _, e := range s.Watched {
		if e.IMDbID == id {
			return e.UserRating, true
		}
	}
	return 0, false
}

// Store owns query, results, selection and the watched list. All mutation
// goes through its named operations.
type Store struct {
	mu      sync.RWMutex
	snap    Snapshot
	search  inflight
	detail  inflight
	watched *watchlist.List
	persist watchlist.Store
}

// NewStore restores the watched list from persist. A nil persist keeps the
// list in memory only.
func NewStore(ctx context.Context, persist watchlist.Store) (*Store, error) {
	s := &Store{persist: persist, watched: watchlist.NewList(nil)}
	if persist != nil {
		entries, err := persist.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load watched: %w", err)
		}
		s.watched = watchlist.NewList(entries)
		logging.Info("watched list restored", "entries", s.watched.Len())
	}
	s.syncWatchedLocked()
	return s, nil
}

// SetQuery records q and starts its search. It closes the detail view and
// cancels any search still in flight. The returned request is nil when q is blank and nothing should be
// fetched.
func (s *Store) SetQuery(ctx context.Context, q string) *SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Query = q
	s.closeLocked()
	if strings.TrimSpace(q) == "" {
		s.search.stop()
		s.snap.Movies = nil
		s.snap.Error = ""
		s.snap.Loading = false
		return nil
	}

	reqCtx, gen := s.search.supersede(ctx)
	s.snap.Loading = true
	s.snap.Error = ""
	logging.Debug("search issued", "query", q, "gen", gen)
	return &SearchRequest{Query: q, gen: gen, ctx: reqCtx}
}

// ApplySearch folds a finished search into the state. Results from a
// superseded request are discarded and ApplySearch returns false.
func (s *Store) ApplySearch(res SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.search.current(res.gen) {
		logging.Debug("search discarded", "query", res.Query, "gen", res.gen)
		return false
	}
	s.search.finish(res.gen)
	s.snap.Loading = false

	switch {
	case res.Err == nil:
		s.snap.Movies = cloneMovies(res.Movies)
		s.snap.Error = ""
		logging.Info("search finished", "query", res.Query, "results", len(res.Movies))
	case errors.Is(res.Err, context.Canceled):
		// Cancelled without a successor (shutdown): nothing to show.
	default:
		s.snap.Movies = nil
		s.snap.Error = MessageFor(res.Err)
		logging.Warn("search failed", "query", res.Query, "error", res.Err)
	}
	return true
}

// Select opens id in the detail view, or closes it when id is already
// selected. The returned request is nil when nothing needs fetching.
func (s *Store) Select(ctx context.Context, id string) *DetailRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" || id == s.snap.SelectedID {
		s.closeLocked()
		return nil
	}

	reqCtx, gen := s.detail.supersede(ctx)
	s.snap.SelectedID = id
	s.snap.Detail = nil
	s.snap.DetailError = ""
	s.snap.DetailLoading = true
	logging.Debug("details requested", "id", id, "gen", gen)
	return &DetailRequest{IMDbID: id, gen: gen, ctx: reqCtx}
}

// Close clears the selection and cancels any details lookup.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Store) closeLocked() {
	s.detail.stop()
	s.snap.SelectedID = ""
	s.snap.Detail = nil
	s.snap.DetailError = ""
	s.snap.DetailLoading = false
}

// ApplyDetail folds a finished lookup into the state, discarding stale ones.
func (s *Store) ApplyDetail(res DetailResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.detail.current(res.gen) || res.IMDbID != s.snap.SelectedID {
		logging.Debug("details discarded", "id", res.IMDbID, "gen", res.gen)
		return false
	}
	s.detail.finish(res.gen)
	s.snap.DetailLoading = false

	switch {
	case res.Err == nil && res.Details != nil:
		d := *res.Details
		s.snap.Detail = &d
		s.snap.DetailError = ""
	case errors.Is(res.Err, context.Canceled):
	default:
		s.snap.Detail = nil
		s.snap.DetailError = MsgFetchFailed
		if msg := MessageFor(res.Err); msg != "" {
			s.snap.DetailError = msg
		}
		logging.Warn("details failed", "id", res.IMDbID, "error", res.Err)
	}
	return true
}

// AddWatched appends e and persists the list. A persistence failure keeps
// the in-memory entry and is returned.
func (s *Store) AddWatched(ctx context.Context, e watchlist.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watched.Add(e); err != nil {
		return err
	}
	logging.Info("watched added", "id", e.IMDbID, "rating", e.UserRating)
	return s.saveLocked(ctx)
}

// AddSelected adds the movie in the detail view with rating and closes the
// detail view.
func (s *Store) AddSelected(ctx context.Context, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.snap.Detail
	if d == nil || s.snap.SelectedID == "" {
		return fmt.Errorf("no movie loaded")
	}
	e := watchlist.Entry{
		IMDbID:     s.snap.SelectedID,
		Title:      d.Title,
		Year:       d.Year,
		Poster:     d.Poster,
		Runtime:    d.RuntimeMinutes(),
		IMDbRating: d.Rating(),
		UserRating: rating,
	}
	if err := s.watched.Add(e); err != nil {
		return err
	}
	logging.Info("watched added", "id", e.IMDbID, "rating", e.UserRating)
	s.closeLocked()
	return s.saveLocked(ctx)
}

// DeleteWatched removes id and persists the list. Deleting an unknown id is a no-op.
func (s *Store) DeleteWatched(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watched.Delete(id) {
		return nil
	}
	logging.Info("watched deleted", "id", id)
	return s.saveLocked(ctx)
}

// Shutdown cancels anything still in flight.
func (s *Store) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.stop()
	s.detail.stop()
	s.snap.Loading = false
	s.snap.DetailLoading = false
}

func (s *Store) saveLocked(ctx context.Context) error {
	s.syncWatchedLocked()
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Save(ctx, s.watched.Entries()); err != nil {
		s.snap.LastSaveError = err
		logging.Error("save watched failed", "error", err)
		return fmt.Errorf("save watched: %w", err)
	}
	s.snap.LastSaveError = nil
	return nil
}

func (s *Store) syncWatchedLocked() {
	s.snap.Watched = s.watched.Entries()
	s.snap.Summary = watchlist.Summarize(s.snap.Watched)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.Movies = cloneMovies(s.snap.Movies)
	snap.Watched = cloneEntries(s.snap.Watched)
	if s.snap.Detail != nil {
		d := *s.snap.Detail
		snap.Detail = &d
	}
	return snap
}

func cloneMovies(items []omdb.Movie) []omdb.Movie {
	if len(items) == 0 {
		return nil
	}
	dup := make([]omdb.Movie, len(items))
	copy(dup, items)
	return dup
}

func cloneEntries(items []watchlist.Entry) []watchlist.Entry {
	if len(items) == 0 {
		return nil
	}
	dup := make([]watchlist.Entry, len(items))
	copy(dup, items)
	return dup
}

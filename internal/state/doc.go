// Package state is the single owner of popcorn's application state.
//
// # Overview
//
// The UI never mutates query, results, selection or the watched list
// directly. It calls named operations on *Store and renders from Snapshot:
//
//	SetQuery      query changed; closes details, cancels the previous search
//	ApplySearch   fold a finished search in (stale results are dropped)
//	Select        open a movie's details, or close them when re-selected
//	Close         close the detail view
//	ApplyDetail   fold a finished details lookup in
//	AddWatched    append a rated entry and persist
//	AddSelected   build an entry from the open details, persist, close
//	DeleteWatched remove by id and persist
//
// # Cancellation
//
// Each kind of request (search, details) has at most one live instance.
// Issuing a new one cancels the old context and bumps a generation counter.
// Results carry the generation they were issued under, and Apply* ignores
// anything that is no longer current:
//
//	r1 := store.SetQuery(ctx, "ma")      // gen 1
//	r2 := store.SetQuery(ctx, "mat")     // gen 2, r1's context cancelled
//	store.ApplySearch(r1.Do(client))     // false: discarded
//	store.ApplySearch(r2.Do(client))     // true: results visible
//
// Requests run outside the store (Bubble Tea commands), so the store lock
// is never held across network I/O.
//
// # Persistence
//
// Every watched-list mutation saves the entire list through watchlist.Store.
// The in-memory list stays authoritative: a failed save is reported and
// recorded in Snapshot.LastSaveError but the mutation is kept.
//
// # Concurrency
//
// Store uses a sync.RWMutex. Snapshot copies slices and the details struct
// so callers can hold it across renders without racing later updates.
package state

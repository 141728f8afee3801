// Package watchlist holds the user's rated "watched" movies and persists them
// as a single JSON array under a fixed key.
package watchlist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicate is returned when adding an id that is already on the list.
	ErrDuplicate = errors.New("movie already watched")
	// ErrInvalidEntry is returned for entries without an id or with an out-of-range rating.
	ErrInvalidEntry = errors.New("invalid watched entry")
)

// Rating bounds for UserRating.
const (
	MinRating = 1
	MaxRating = 10
)

// Entry is one rated movie. JSON names follow the stored payload.
type Entry struct {
	IMDbID     string  `json:"imdbID"`
	Title      string  `json:"title"`
	Year       string  `json:"year"`
	Poster     string  `json:"poster"`
	Runtime    int     `json:"runtime"`
	IMDbRating float64 `json:"imdbRating"`
	UserRating int     `json:"userRating"`
}

// Validate checks the fields Add relies on.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.IMDbID) == "" {
		return fmt.Errorf("%w: missing imdb id", ErrInvalidEntry)
	}
	if e.UserRating < MinRating || e.UserRating > MaxRating {
		return fmt.Errorf("%w: rating %d outside %d-%d", ErrInvalidEntry, e.UserRating, MinRating, MaxRating)
	}
	return nil
}

// List is an ordered collection of entries with unique ids.
// The zero value is an empty list. Not safe for concurrent use.
type List struct {
	entries []Entry
}

// NewList builds a list from stored entries, dropping later duplicates.
func NewList(entries []Entry) *List {
	l := &List{}
	for _, e := range entries {
		if l.Contains(e.IMDbID) {
			continue
		}
		l.entries = append(l.entries, e)
	}
	return l
}

// Add appends e.
func (l *List) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if l.Contains(e.IMDbID) {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.IMDbID)
	}
	l.entries = append(l.entries, e)
	return nil
}

// Delete removes the entry with id and reports whether one was removed.
func (l *List) Delete(id string) bool {
	for i, e := range l.entries {
		if e.IMDbID == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry with id.
func (l *List) Get(id string) (Entry, bool) {
	for _, e := range l.entries {
		if e.IMDbID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether id is on the list.
func (l *List) Contains(id string) bool {
	_, ok := l.Get(id)
	return ok
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in insertion order.
func (l *List) Entries() []Entry {
	if len(l.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(l.entries))
	copy(dup, l.entries)
	return dup
}

// Summary aggregates the watched list for the summary panel.
type Summary struct {
	Count         int
	AvgIMDbRating float64
	AvgUserRating float64
	AvgRuntime    float64
}

// Summarize computes averages over entries. Empty input yields zeros.
func Summarize(entries []Entry) Summary {
	imdb := make([]float64, 0, len(entries))
	user := make([]float64, 0, len(entries))
	runtime := make([]float64, 0, len(entries))
	for _, e := range entries {
		imdb = append(imdb, e.IMDbRating)
		user = append(user, float64(e.UserRating))
		runtime = append(runtime, float64(e.Runtime))
	}
	return Summary{
		Count:         len(entries),
		AvgIMDbRating: average(imdb),
		AvgUserRating: average(user),
		AvgRuntime:    average(runtime),
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

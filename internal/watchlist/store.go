package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// StorageKey is the fixed key the serialized list lives under.
const StorageKey = "watched"

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store persists the whole list. Save overwrites what was stored before.
// Load returns an empty slice, not an error, when nothing has been stored yet.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Close() error
}

// Open returns the backend named by kind rooted at dataDir.
func Open(kind, dataDir string) (Store, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("data dir is empty")
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendJSON:
		return NewJSONStore(filepath.Join(dataDir, StorageKey+".json")), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, "popcorn.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

func encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode watched: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]Entry, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return nil, fmt.Errorf("decode watched: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

package watchlist

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	out := map[string]Store{}
	for _, kind := range []string{BackendJSON, BackendSQLite} {
		s, err := Open(kind, filepath.Join(t.TempDir(), "data"))
		if err != nil {
			t.Fatalf("Open(%s) returned error: %v", kind, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		out[kind] = s
	}
	return out
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	for kind, s := range backends(t) {
		got, err := s.Load(context.Background())
		if err != nil {
			t.Fatalf("%s: Load returned error: %v", kind, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: Load = %#v, want empty non-nil slice", kind, got)
		}
	}
}

func TestStore_AddDeleteReload(t *testing.T) {
	ctx := context.Background()
	for kind, s := range backends(t) {
		l := NewList(nil)
		if err := l.Add(entry("tt1", 9)); err != nil {
			t.Fatalf("%s: Add: %v", kind, err)
		}
		if err := l.Add(entry("tt2", 6)); err != nil {
			t.Fatalf("%s: Add: %v", kind, err)
		}
		if err := s.Save(ctx, l.Entries()); err != nil {
			t.Fatalf("%s: Save returned error: %v", kind, err)
		}

		loaded, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("%s: Load returned error: %v", kind, err)
		}
		if len(loaded) != 2 || loaded[0].IMDbID != "tt1" || loaded[0].UserRating != 9 || loaded[1].IMDbID != "tt2" {
			t.Fatalf("%s: Load = %#v, want tt1 then tt2", kind, loaded)
		}

		l = NewList(loaded)
		l.Delete("tt1")
		if err := s.Save(ctx, l.Entries()); err != nil {
			t.Fatalf("%s: Save returned error: %v", kind, err)
		}
		loaded, err = s.Load(ctx)
		if err != nil {
			t.Fatalf("%s: Load returned error: %v", kind, err)
		}
		if len(loaded) != 1 || loaded[0].IMDbID != "tt2" {
			t.Fatalf("%s: Load after delete = %#v, want only tt2", kind, loaded)
		}

		// Saving an empty list stores [] rather than nothing.
		if err := s.Save(ctx, nil); err != nil {
			t.Fatalf("%s: Save(nil) returned error: %v", kind, err)
		}
		loaded, err = s.Load(ctx)
		if err != nil || len(loaded) != 0 {
			t.Fatalf("%s: Load after clearing = %#v, %v; want empty", kind, loaded, err)
		}
	}
}

func TestJSONStore_WritesArrayUnderFixedName(t *testing.T) {
	dir := t.TempDir()
	s, err := Open("", dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Save(context.Background(), []Entry{entry("tt9", 4)}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "watched.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), `[{"imdbID":"tt9"`) {
		t.Fatalf("watched.json = %s, want JSON array of entries", data)
	}
}

func TestJSONStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := NewJSONStore(path).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode watched") {
		t.Fatalf("Load error = %v, want decode watched error", err)
	}
}

func TestJSONStore_NullIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.json")
	if err := os.WriteFile(path, []byte("null"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := NewJSONStore(path).Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("Load = %#v, %v; want empty", got, err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatalf("Open(redis) returned nil error")
	}
	if _, err := Open("json", " "); err == nil {
		t.Fatalf("Open with empty dir returned nil error")
	}
}

package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "secret", 1000)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want https://example.com:1234/", u.String())
	}
	if u.RawQuery != "" || u.Fragment != "" || u.Path != "/" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "  ", 0); err == nil {
		t.Fatalf("NewClient returned nil error, want api key error")
	}
}

func TestClient_SearchEncodesQueryAndDecodes(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Response:     "True",
			TotalResults: "2",
			Search: []Movie{
				{IMDbID: "tt0133093", Title: "The Matrix", Year: "1999", Poster: "https://img/1.jpg"},
				{IMDbID: "tt0234215", Title: "The Matrix Reloaded", Year: "2003", Poster: "N/A"},
			},
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	movies, err := c.Search(ctx, "  matrix ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(movies) != 2 || movies[0].IMDbID != "tt0133093" || movies[1].Title != "The Matrix Reloaded" {
		t.Fatalf("Search movies = %#v, want two matrix titles", movies)
	}
	if movies[1].HasPoster() {
		t.Fatalf("HasPoster for N/A poster = true, want false")
	}
	if gotQuery.Get("s") != "matrix" || gotQuery.Get("apikey") != "secret" {
		t.Fatalf("query = %v, want s=matrix apikey=secret", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "popcorn/") {
		t.Fatalf("User-Agent = %q, want popcorn/*", gotUserAgent)
	}
}

func TestClient_SearchNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	movies, err := c.Search(context.Background(), "zzzzqqq")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Search error = %v, want ErrNotFound", err)
	}
	if movies != nil {
		t.Fatalf("Search movies = %#v, want nil", movies)
	}
	if !strings.Contains(err.Error(), "Movie not found!") {
		t.Fatalf("Search error = %q, want API detail preserved", err.Error())
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("s") {
		case "broken":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	})

	_, err := c.Search(context.Background(), "broken")
	if !errors.Is(err, ErrFetchFailed) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Search error = %v, want decode failure", err)
	}

	_, err = c.Search(context.Background(), "anything")
	if !errors.Is(err, ErrFetchFailed) || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Search error = %v, want status 500 failure", err)
	}
}

func TestClient_SearchRejectsEmptyQuery(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "k", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Search(context.Background(), "   "); err == nil {
		t.Fatalf("Search returned nil error, want error")
	}
}

func TestClient_CancelledRequestReturnsContextError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Search(ctx, "slow")
		done <- err
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Search error = %v, want context.Canceled", err)
		}
		if errors.Is(err, ErrFetchFailed) {
			t.Fatalf("cancellation must not be reported as a fetch failure: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Search did not return after cancel")
	}
}

func TestClient_Details(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if r.URL.Query().Get("i") == "tt0000000" {
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
			return
		}
		_, _ = w.Write([]byte(`{"Response":"True","imdbID":"tt1375666","Title":"Inception","Year":"2010",
			"Runtime":"148 min","imdbRating":"8.8","Director":"Christopher Nolan","Genre":"Action, Sci-Fi"}`))
	})

	d, err := c.Details(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if d.Title != "Inception" || d.RuntimeMinutes() != 148 || d.Rating() != 8.8 {
		t.Fatalf("Details = %#v, want Inception 148 min 8.8", d)
	}
	if gotQuery.Get("i") != "tt1375666" || gotQuery.Get("plot") != "short" {
		t.Fatalf("query = %v, want i and plot encoded", gotQuery)
	}

	if _, err := c.Details(context.Background(), "tt0000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Details error = %v, want ErrNotFound", err)
	}
	if _, err := c.Details(context.Background(), " "); err == nil {
		t.Fatalf("Details returned nil error for empty id")
	}
}

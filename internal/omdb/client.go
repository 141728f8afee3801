package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Sentinel errors callers map to user-facing messages.
var (
	// ErrNotFound is returned when OMDb answers Response=False.
	ErrNotFound = errors.New("movie not found")
	// ErrFetchFailed covers non-2xx statuses, transport failures and bad payloads.
	ErrFetchFailed = errors.New("fetch failed")
)

// Searcher is the subset of the OMDb API popcorn depends on.
// *Client implements it; tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Movie, error)
	Details(ctx context.Context, imdbID string) (*Details, error)
}

var _ Searcher = (*Client)(nil)

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL   = "https://www.omdbapi.com/"
	defaultUserAgent = "popcorn/0.1"
	defaultRate      = 5
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for baseURL. requestsPerSecond <= 0 uses the default.
func NewClient(baseURL, apiKey string, requestsPerSecond float64) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is empty")
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRate
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(apiKey),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		userAgent: defaultUserAgent,
	}, nil
}

// Search runs a title search. An empty query is rejected without a request.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("query is empty")
	}
	values := url.Values{}
	values.Set("s", q)

	var payload SearchResponse
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}
	if isFalse(payload.Response) {
		return nil, notFound(payload.Error)
	}
	return payload.Search, nil
}

// Details looks up a single title by IMDb id.
func (c *Client) Details(ctx context.Context, imdbID string) (*Details, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id := strings.TrimSpace(imdbID)
	if id == "" {
		return nil, fmt.Errorf("imdb id required")
	}
	values := url.Values{}
	values.Set("i", id)
	values.Set("plot", "short")

	var payload Details
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}
	if isFalse(payload.Response) {
		return nil, notFound(payload.Error)
	}
	if payload.IMDbID == "" {
		payload.IMDbID = id
	}
	return &payload, nil
}

func notFound(detail string) error {
	if d := strings.TrimSpace(detail); d != "" {
		return fmt.Errorf("%w: %s", ErrNotFound, d)
	}
	return ErrNotFound
}

func (c *Client) get(ctx context.Context, values url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("rate limiter: %w", err)
	}

	values.Set("apikey", c.apiKey)
	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: execute request: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: api returned status %d", ErrFetchFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

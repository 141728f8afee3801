// Package omdb is a small client for the OMDb movie database API.
//
// # Endpoints
//
// Only two calls are used, both GET against the configured base URL:
//
//	?apikey=KEY&s=QUERY          title search (first page, 10 hits)
//	?apikey=KEY&i=IMDBID&plot=short   single title details
//
// OMDb answers HTTP 200 for "no results" and signals it in the body with
// Response="False". Those bodies surface as ErrNotFound, wrapped with the
// API's own Error text.
//
// # Errors
//
//   - ErrNotFound: Response="False"
//   - ErrFetchFailed: non-2xx status, transport failure, undecodable body
//   - context.Canceled / context.DeadlineExceeded: returned unwrapped when the
//     caller's context ends, so cancellation is never confused with a failure
//
// # Rate limiting
//
// Every call waits on a token bucket (golang.org/x/time/rate) before it is
// sent. The wait honours the request context, so a superseded search that is
// still queued behind the limiter is dropped without touching the network.
//
// # Usage
//
//	client, err := omdb.NewClient(cfg.APIBase, cfg.APIKey, cfg.RequestsPerSecond)
//	if err != nil {
//		return err
//	}
//	movies, err := client.Search(ctx, "inception")
package omdb

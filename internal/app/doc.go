// Package app is popcorn's composition root.
//
// # Startup
//
// Setup wires everything the UI needs, in order:
//
//  1. Load ~/.config/popcorn/config.toml (or -config) and apply -storage
//  2. Refuse to start without an OMDb API key
//  3. Open <log_dir>/popcorn.log for the package logger
//  4. Load UI preferences (never fails)
//  5. Build the rate-limited OMDb client
//  6. Open the watched list backend (watched.json or popcorn.db)
//  7. Restore the watched list into a state.Store
//
// A corrupt watched list stops startup rather than being silently replaced
// with an empty one on the next save.
//
// Run calls Setup, hands the services to ui.Run and closes them when the
// program exits. Cancelling ctx (SIGINT/SIGTERM in cmd/popcorn) stops the
// TUI and every request still in flight.
package app

// Package config loads popcorn's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/popcorn/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Empty or invalid fields fall back to their defaults
//  5. OMDB_API_KEY, when set, replaces api_key
//
// # Default Values
//
//   - api_base: https://www.omdbapi.com/
//   - data_dir: ~/.local/share/popcorn
//   - log_dir: ~/.local/share/popcorn/logs
//   - storage: json (json or sqlite)
//   - requests_per_second: 5
//   - log_level: info
//
// There is no default API key. Load succeeds without one so the caller can
// report it; Validate returns ErrMissingAPIKey.
//
// # TOML Format
//
//	api_key = "xxxxxxxx"
//	storage = "sqlite"
//	data_dir = "~/movies"
//	requests_per_second = 2
//
// Tilde expansion is applied to data_dir and log_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors ("parse config: ..."). Unknown
// storage kinds and non-positive rates are not errors.
package config

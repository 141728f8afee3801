// Package ui is popcorn's terminal interface, built on Bubble Tea.
//
// # Layout
//
//	🍿 usePopcorn   🔍 Search movies...              Found 10 results
//	┌──── Results [–] ────┐┌──────── Watched [–] ────────┐
//	│▶ The Matrix         ││MOVIES YOU WATCHED           │
//	│  🗓 1999            ││#️⃣ 2 movies ⭐ 8.10 🌟 9.00  │
//	│  The Matrix Reloaded││...                          │
//	└─────────────────────┘└─────────────────────────────┘
//	tab next pane • space open/close movie • esc close details • ? help
//
// The right box shows the open movie when one is selected and the watched
// summary and list otherwise. Either box collapses with [ or ]; the state
// is saved to prefs along with the theme.
//
// # State
//
// Model holds no domain state of its own. Every change goes through
// state.Store and Model re-reads a Snapshot afterwards (refresh). Network
// calls run as tea.Cmds carrying a state.SearchRequest or DetailRequest;
// their results come back as searchResultMsg and detailResultMsg and are
// dropped by the store when a newer request has superseded them.
//
// # Keys
//
// Keys flow through three layers:
//
//  1. Overlays (help, log) swallow everything while open
//  2. The hotkey.Dispatcher: the search box owns enter and esc for the life
//     of the program, and an open movie adds its own esc handler that is
//     removed when the movie closes, so esc closes the movie first and only
//     then leaves the search box
//  3. The focused pane (search box, results, watched list, movie)
//
// While the search box has focus every printable key is text, so q only
// quits from the other panes. ctrl+c always quits.
//
// # Window title
//
// The terminal title is "Movie | <title>" while a movie is open and
// "usePopcorn" otherwise.
package ui

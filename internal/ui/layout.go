package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutStackedWidth is the width below which the boxes stack vertically.
	LayoutStackedWidth = 80

	// LayoutWideWidth is the width at which the results box narrows to 40%.
	LayoutWideWidth = 140
)

// Fixed rows outside the boxes: header and footer.
const chromeRows = 2

// Log overlay limits.
const (
	// LogOverlayLines is how many trailing log lines the overlay reads.
	LogOverlayLines = 500
)

// Timing constants.
const (
	// StatusTTL is how long a footer status message stays visible.
	StatusTTL = 4 * time.Second

	// DefaultUIInterval is the housekeeping tick interval.
	DefaultUIInterval = time.Second
)

// Window titles.
const (
	appTitle         = "usePopcorn"
	movieTitlePrefix = "Movie | "
)

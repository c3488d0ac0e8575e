package constants

import "time"

// Crafting Configuration
const (
	// Interaction Delays
	WaitAfterAction = 100 * time.Millisecond // Wait after each currency click so the client can redraw the tooltip
	WaitAfterCopy   = 50 * time.Millisecond  // Wait between the copy hotkey and reading the clipboard

	// Retry Limits
	CaptureRetries        = 3 // Extra capture attempts when the clipboard comes back empty
	ClusterCaptureRetries = 5 // Cluster tooltips are slower to copy
	DefaultMaxAttempts    = 10

	// Cluster Bench
	ClusterItemOffsetY = 80 // The jewel sits this many pixels above the craft button

	// Delimiters
	TooltipDelimiter = "--------"

	// Debugging
	DebugDump = false
)

// Defaults for values that can be overridden from the environment
const (
	DefaultCalibrationFile = "userconfig.json"
	DefaultGameWindow      = "PathOfExile"
	DefaultKillswitchKey   = "+"
	DefaultLogLevel        = "info"
	DefaultDebugDir        = "debug"
)

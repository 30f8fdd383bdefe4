// Package config centralizes the fixed game tuning parameters.
package config

import "time"

// Frame pacing for the terminal driver.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Game over
const (
	GameOverDisplay = 3 * time.Second
	GameOverOffsetY = 50 // "Game Over!" sits this far above the final score
)

// Stains
const (
	StainMinSize = 50
	StainMaxSize = 80 // inclusive
)

// Board
const (
	GridLines     = 9
	CursorRadius  = 5
	HUDMargin     = 10
	HUDModeY      = 50
	HUDTimeOffset = 150 // "Time" label distance from the right edge
)

package game

import "time"

const (
	// Grid size used when the terminal size is unknown.
	DefaultCols = 60
	DefaultRows = 24

	// Ticks allowed since the last food before the session is cut off.
	MaxStepsWithoutFood = 300

	// Heuristic weights for Agent scoring.
	progressReward    = 100.0
	progressPenalty   = -50.0
	alignmentBonus    = 50.0
	repetitionPenalty = -20.0
	centeringBase     = 20.0

	// A best move repeated more than this many times in a row forces a re-pick.
	maxMoveRepeats = 5

	BaseTickDuration = 100 * time.Millisecond
	MinTickDuration  = 40 * time.Millisecond
	// Every point eaten shaves this much off the tick interval.
	speedupPerPoint = 2 * time.Millisecond

	RestartDelay = 2 * time.Second

	// Random food placement attempts before falling back to a grid scan.
	foodSampleAttempts = 64
)

package parameter

import "time"

// Layout & Margins
const (
	// TopMargin for status bar (1 line for run statistics)
	TopMargin = 1

	// BottomMargin for key help line
	BottomMargin = 1

	// MinPlotHeight is the smallest plot area that still draws the landscape
	MinPlotHeight = 2
)

// Glyphs
const (
	CurveChar      = '·'
	IndividualChar = 'o'
	BestChar       = '@'
)

// Viewer Timing
const (
	// FrameInterval paces steps and redraws (~30 FPS)
	FrameInterval = 33 * time.Millisecond

	// StepsPerFrame is the default number of optimizer steps run per frame
	StepsPerFrame = 25
)

// Status Bar
const (
	HelpText = " q quit  space pause  s step  r restart"
)

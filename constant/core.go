package constant

import "time"

// Walk Tuning
const (
	// TurnOdds is the size of the continue/turn roll; a roll of 0 turns
	TurnOdds = 8

	// JunctionOdds is the size of the curve/junction roll taken on every turn; a roll of 0 places a junction sphere
	JunctionOdds = 8

	// TurnAttempts is the retry budget for finding an eligible new direction before a pipe is blocked
	TurnAttempts = 16

	// StartAttempts is the random sampling budget for a pipe start before falling back to a full scan
	StartAttempts = 4096
)

// Scene Defaults
const (
	// DefaultGridSize fits a typical terminal
	DefaultGridSize = 25

	// DefaultStepsPerPipe is the target element count of one pipe
	DefaultStepsPerPipe = 200

	// DefaultPipeCount is the number of pipes per scene
	DefaultPipeCount = 6

	// DefaultWaitSlots is the stagger between consecutive pipe starts, in reveal ticks
	DefaultWaitSlots = 100
)

// Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultRevealRate is reveal ticks per second of unpaused time
	DefaultRevealRate = 30

	// MaxCatchUpTicks bounds the reveal ticks applied after a long stall
	MaxCatchUpTicks = 8

	// EventQueueSize buffers terminal events between the poller and the loop
	EventQueueSize = 100
)

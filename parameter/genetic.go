package parameter

// Optimizer - Population Configuration
const (
	// PopulationCount is the number of individuals evolved per run
	PopulationCount = 10

	// StepCount is the number of rank/merge/mutate generations per run
	StepCount = 15000

	// Seed drives the LCG for the primary run
	Seed = 123
)

// Optimizer - Position Bounds
const (
	// MinX is the inclusive lower bound for initial positions
	MinX = 0.0

	// MaxX is the exclusive upper bound for initial positions
	MaxX = 1000.0
)

// Optimizer - Mutation Bounds
const (
	// MinMutation is the lower edge of the mutation draw
	MinMutation = 0.05

	// MaxMutation is the upper edge of the mutation draw before the score-distance term
	MaxMutation = 0.10

	// MergeDistanceDivisor scales score disagreement into extra mutation spread
	MergeDistanceDivisor = 100.0
)

// LCG - 48-bit linear congruential generator
const (
	LCGMultiplier = 0x5DEECE66D
	LCGIncrement  = 11
	LCGStateBits  = 48
)

// Optimizer - Cancellation
const (
	// ContextCheckEvery is how many steps RunContext runs between context checks
	ContextCheckEvery = 256
)

// Batch - concurrent independent runs
const (
	// BatchMaxRuns caps the seeds a single batch may run
	BatchMaxRuns = 1024
)

// Tracking - Convergence Trace
const (
	// TraceEvery records one trace point per N steps
	TraceEvery = 100
)

// Logging - debug log file
const (
	// LogDir holds debug logs relative to the working directory
	LogDir = "logs"

	// LogFileName is the active log file inside LogDir
	LogFileName = "evolve.log"

	// MaxLogSize triggers rotation of the active log file
	MaxLogSize = 10 * 1024 * 1024
)

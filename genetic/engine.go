package genetic

import (
	"cmp"
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/lixenwraith/evolve/parameter"
	"github.com/lixenwraith/evolve/vmath"
)

// --- Optimizer ---

// Optimizer evolves a fixed-size population toward the highest score
// Each step ranks ascending by score, pulls every non-best individual halfway toward the
// best and perturbs it with LCG noise. Single-threaded; not safe for concurrent use.
type Optimizer struct {
	config  Config
	mutator Mutator

	// State
	rng   *vmath.LCG
	pop   Population
	state State
	steps int

	observer Observer
	log      *zap.Logger
}

// Config holds the run parameters
type Config struct {
	// PopulationCount is the fixed number of individuals
	PopulationCount int
	// StepCount is the number of generations to run
	StepCount int
	// MinX, MaxX bound the initial positions
	MinX, MaxX float64
	// MinMutation, MaxMutation bound the base perturbation draw
	MinMutation, MaxMutation float64
	// Seed for the LCG
	Seed uint64
	// MutateBest also perturbs the best individual after each merge pass
	MutateBest bool
}

// DefaultConfig returns the build-time configuration
func DefaultConfig() Config {
	return Config{
		PopulationCount: parameter.PopulationCount,
		StepCount:       parameter.StepCount,
		MinX:            parameter.MinX,
		MaxX:            parameter.MaxX,
		MinMutation:     parameter.MinMutation,
		MaxMutation:     parameter.MaxMutation,
		Seed:            parameter.Seed,
	}
}

// Validate rejects configurations the optimizer cannot run
func (c Config) Validate() error {
	if c.PopulationCount < 1 {
		return errors.Errorf("population count %d < 1", c.PopulationCount)
	}
	if c.StepCount < 0 {
		return errors.Errorf("step count %d < 0", c.StepCount)
	}
	for _, v := range []float64{c.MinX, c.MaxX, c.MinMutation, c.MaxMutation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("non-finite bound %v", v)
		}
	}
	if c.MinX > c.MaxX {
		return errors.Errorf("position bounds inverted: %v > %v", c.MinX, c.MaxX)
	}
	if c.MinMutation > c.MaxMutation {
		return errors.Errorf("mutation bounds inverted: %v > %v", c.MinMutation, c.MaxMutation)
	}
	return nil
}

// Option customizes an Optimizer
type Option func(*Optimizer)

// WithLogger routes lifecycle debug entries to l
func WithLogger(l *zap.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.log = l
		}
	}
}

// WithObserver registers a per-step observer
func WithObserver(obs Observer) Option {
	return func(o *Optimizer) {
		o.observer = obs
	}
}

// New creates an uninitialized optimizer
func New(config Config, opts ...Option) (*Optimizer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "genetic: invalid config")
	}

	o := &Optimizer{
		config:  config,
		mutator: Mutator{Min: config.MinMutation, Max: config.MaxMutation},
		state:   StateUninitialized,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Init seeds the generator and draws the initial population in ID order
// Panics if called more than once
func (o *Optimizer) Init() {
	if o.state != StateUninitialized {
		panic("genetic: Init called on " + o.state.String() + " optimizer")
	}

	o.rng = vmath.NewLCG(o.config.Seed)
	o.pop = make(Population, o.config.PopulationCount)
	for i := range o.pop {
		o.pop[i] = Individual{
			ID: uint64(i),
			X:  vmath.Between(o.rng, o.config.MinX, o.config.MaxX),
		}
	}

	o.state = StateRunning
	o.log.Debug("population initialized",
		zap.Uint64("seed", o.config.Seed),
		zap.Int("count", o.config.PopulationCount),
		zap.Int("steps", o.config.StepCount),
		zap.Bool("mutate_best", o.config.MutateBest),
	)
	o.notify()

	if o.config.StepCount == 0 {
		o.complete()
	}
}

// Step runs one generation and reports whether more steps remain
// Panics before Init; no-op once completed
func (o *Optimizer) Step() bool {
	switch o.state {
	case StateUninitialized:
		panic("genetic: Step called before Init")
	case StateCompleted:
		return false
	}

	o.rank()

	// Best is captured by value and its index is skipped, never aliased
	bestIdx := len(o.pop) - 1
	best := o.pop[bestIdx]
	bestScore := best.Score()

	for i := 0; i < bestIdx; i++ {
		o.merge(&o.pop[i], best.X, bestScore)
	}

	if o.config.MutateBest {
		o.mutator.Mutate(&o.pop[bestIdx].X, 0, o.rng)
	}

	o.steps++
	o.notify()

	if o.steps >= o.config.StepCount {
		o.complete()
	}
	return o.state == StateRunning
}

// Run initializes if needed, steps to completion and returns the final population
func (o *Optimizer) Run() Population {
	if o.state == StateUninitialized {
		o.Init()
	}
	for o.Step() {
	}
	return o.Population()
}

// RunContext is Run with cancellation, checked every ContextCheckEvery steps
// On cancellation the optimizer stays running and the context error is returned;
// calling RunContext again resumes from the current step.
func (o *Optimizer) RunContext(ctx context.Context) (Population, error) {
	if o.state == StateUninitialized {
		o.Init()
	}
	for i := 0; o.state == StateRunning; i++ {
		if i%parameter.ContextCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				o.log.Debug("run interrupted", zap.Int("steps", o.steps), zap.Error(err))
				return nil, errors.Wrap(err, "genetic: run interrupted")
			}
		}
		o.Step()
	}
	return o.Population(), nil
}

// rank sorts ascending by score; order among equal scores is unspecified
func (o *Optimizer) rank() {
	slices.SortFunc(o.pop, func(a, b Individual) int {
		return cmp.Compare(a.Score(), b.Score())
	})
}

// merge averages ind with the best position, then mutates with extra spread
// proportional to the score gap measured before the move
func (o *Optimizer) merge(ind *Individual, bestX, bestScore float64) {
	diff := math.Abs(ind.Score() - bestScore)
	ind.X = (ind.X + bestX) / 2
	o.mutator.Mutate(&ind.X, diff/parameter.MergeDistanceDivisor, o.rng)
}

func (o *Optimizer) complete() {
	o.state = StateCompleted
	if ce := o.log.Check(zap.DebugLevel, "run completed"); ce != nil {
		s := Measure(o.pop)
		ce.Write(
			zap.Int("steps", o.steps),
			zap.Float64("min", s.Min),
			zap.Float64("max", s.Max),
			zap.Float64("avg", s.Mean),
			zap.Uint64("best_id", s.Best.ID),
		)
	}
}

func (o *Optimizer) notify() {
	if o.observer != nil {
		o.observer.Observe(o.steps, o.pop.Clone())
	}
}

// --- Accessors ---

// State returns the lifecycle stage
func (o *Optimizer) State() State { return o.state }

// StepsDone returns the number of completed generations
func (o *Optimizer) StepsDone() int { return o.steps }

// Config returns the run configuration
func (o *Optimizer) Config() Config { return o.config }

// Population returns a copy of the current population in its current order
// Nil before Init
func (o *Optimizer) Population() Population { return o.pop.Clone() }

// Stats measures the current population; panics before Init
func (o *Optimizer) Stats() Stats { return Measure(o.pop) }

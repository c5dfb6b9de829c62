package genetic

import (
	"github.com/lixenwraith/evolve/genetic/fitness"
)

// --- Core Data Structures ---

// Individual is one candidate solution: a stable identifier and a scalar position
// Fitness is never stored, Score recomputes it from the position
type Individual struct {
	// ID is assigned at population creation and never changes
	ID uint64
	// X is the unbounded position (gene)
	X float64
}

// Score returns the fitness of the individual's current position
func (i Individual) Score() float64 {
	return fitness.Score(i.X)
}

// Population is the fixed-size ordered working set of a run
type Population []Individual

// Clone returns an independent copy
func (p Population) Clone() Population {
	if p == nil {
		return nil
	}
	out := make(Population, len(p))
	copy(out, p)
	return out
}

// Stats summarizes the scores of a population
type Stats struct {
	Min   float64
	Max   float64
	Sum   float64
	Mean  float64
	Count int
	// Best is the individual holding Max
	Best Individual
}

// --- Lifecycle ---

// State is the optimizer lifecycle stage
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// --- Hooks ---

// Observer receives a copy of the population after Init (step 0) and after every step
// Called synchronously on the optimizer's goroutine
type Observer interface {
	Observe(step int, pop Population)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(step int, pop Population)

func (f ObserverFunc) Observe(step int, pop Population) { f(step, pop) }

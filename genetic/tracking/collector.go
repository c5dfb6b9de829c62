package tracking

import (
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/evolve/genetic"
)

// Point is one sample of the convergence trace
type Point struct {
	Step   int
	Min    float64
	Max    float64
	Mean   float64
	BestID uint64
	BestX  float64
	// Diversity is the population standard deviation of positions
	Diversity float64
}

// NewPoint measures pop at step
func NewPoint(step int, pop genetic.Population) Point {
	s := genetic.Measure(pop)

	xs := make([]float64, len(pop))
	for i, ind := range pop {
		xs[i] = ind.X
	}
	_, diversity := stat.PopMeanStdDev(xs, nil)

	return Point{
		Step:      step,
		Min:       s.Min,
		Max:       s.Max,
		Mean:      s.Mean,
		BestID:    s.Best.ID,
		BestX:     s.Best.X,
		Diversity: diversity,
	}
}

// Spread is the score gap between best and worst
func (p Point) Spread() float64 {
	return p.Max - p.Min
}

// Trace records every Nth step of a run; implements genetic.Observer
type Trace struct {
	every  int
	points []Point
}

// NewTrace creates a trace sampling one point per every steps (minimum 1)
func NewTrace(every int) *Trace {
	if every < 1 {
		every = 1
	}
	return &Trace{every: every}
}

// Observe records the population when step falls on the sampling stride
func (t *Trace) Observe(step int, pop genetic.Population) {
	if step%t.every != 0 {
		return
	}
	t.points = append(t.points, NewPoint(step, pop))
}

// Finalize appends the terminal step if the stride missed it and returns the trace
func (t *Trace) Finalize(step int, pop genetic.Population) []Point {
	if n := len(t.points); n == 0 || t.points[n-1].Step != step {
		t.points = append(t.points, NewPoint(step, pop))
	}
	return t.Points()
}

// Points returns a copy of the recorded samples
func (t *Trace) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Every returns the sampling stride
func (t *Trace) Every() int { return t.every }

// Reset drops recorded samples, keeping the stride
func (t *Trace) Reset() {
	t.points = t.points[:0]
}

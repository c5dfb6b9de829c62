package genetic

import (
	"fmt"
	"io"
)

// Measure computes min, max, sum and mean of scores in one pass
// Best is the first individual reaching Max. Panics on an empty population.
func Measure(pop Population) Stats {
	if len(pop) == 0 {
		panic("genetic: Measure on empty population")
	}

	first := pop[0].Score()
	stats := Stats{
		Min:   first,
		Max:   first,
		Best:  pop[0],
		Count: len(pop),
	}

	var sum float64
	for _, ind := range pop {
		score := ind.Score()
		if score < stats.Min {
			stats.Min = score
		}
		if score > stats.Max {
			stats.Max = score
			stats.Best = ind
		}
		sum += score
	}

	stats.Sum = sum
	stats.Mean = sum / float64(len(pop))
	return stats
}

// WriteSummary prints the fixed-format run report
// Numbers use six significant digits
func WriteSummary(w io.Writer, config Config, stats Stats) error {
	_, err := fmt.Fprintf(w,
		"Count: %d, steps: %d\n"+
			"Seed: %d\n"+
			"Results:\n"+
			"  min:  %.6g\n"+
			"  max:  %.6g\n"+
			"  avg:  %.6g\n"+
			"  best: (%d, x=%.6g, score=%.6g)\n",
		config.PopulationCount, config.StepCount,
		config.Seed,
		stats.Min,
		stats.Max,
		stats.Mean,
		stats.Best.ID, stats.Best.X, stats.Best.Score(),
	)
	return err
}

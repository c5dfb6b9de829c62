package genetic

import "github.com/lixenwraith/evolve/vmath"

// Mutator applies a uniform perturbation whose spread grows with an extra budget
// spread = Max - Min + extra; x += Between(Min, Min+spread) - spread/2
// Positions are never clamped
type Mutator struct {
	Min, Max float64
}

// Mutate perturbs x in place, consuming exactly one draw from rng
func (m Mutator) Mutate(x *float64, extra float64, rng *vmath.LCG) {
	spread := m.Spread(extra)
	*x += vmath.Between(rng, m.Min, m.Min+spread) - spread/2
}

// Spread returns the width of the perturbation window for a given extra budget
func (m Mutator) Spread(extra float64) float64 {
	return m.Max - m.Min + extra
}

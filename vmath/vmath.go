package vmath

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/lixenwraith/evolve/parameter"
)

// LCG constants, state is kept in the low 48 bits
const (
	Multiplier = parameter.LCGMultiplier
	Increment  = parameter.LCGIncrement
	StateBits  = parameter.LCGStateBits
	Modulus    = uint64(1) << StateBits
	stateMask  = Modulus - 1
)

// Number is any ordered numeric type accepted by the range draws
type Number interface {
	constraints.Integer | constraints.Float
}

// --- Randomness ---

// LCG is a deterministic 48-bit linear congruential generator
// state = (Multiplier*state + Increment) mod 2^48
//
// For a fixed seed and a fixed sequence of draw calls every output is reproducible.
// Not safe for concurrent use; the zero value is a generator seeded with 0.
type LCG struct {
	state uint64
}

// NewLCG returns a generator seeded with seed mod 2^48
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed & stateMask}
}

// Seed resets the generator state
func (r *LCG) Seed(seed uint64) {
	r.state = seed & stateMask
}

// State returns the current internal state
func (r *LCG) State() uint64 {
	return r.state
}

// Next advances the state and returns its top bits bits
// bits must be in [0, 48]; larger values panic
func (r *LCG) Next(bits uint) uint64 {
	if bits > StateBits {
		panic(fmt.Sprintf("vmath: LCG.Next bits %d out of range [0,%d]", bits, StateBits))
	}
	// Multiplication wraps mod 2^64, masking keeps the result exact mod 2^48
	r.state = (Multiplier*r.state + Increment) & stateMask
	return r.state >> (StateBits - bits)
}

// Float64 returns a value in [0, 1) built from a full 48-bit draw
func (r *LCG) Float64() float64 {
	return float64(r.Next(StateBits)) / float64(Modulus)
}

// Between returns min + Float64()*(max-min) converted to T
// Callers guarantee min <= max
func Between[T Number](r *LCG, min, max T) T {
	// Explicit conversion rounds the product, blocking FMA fusion on arm64/ppc64
	return T(float64(r.Float64()*float64(max-min)) + float64(min))
}

// Values returns n independent Between draws, in index order
func Values[T Number](r *LCG, n int, min, max T) []T {
	dst := make([]T, n)
	for i := range dst {
		dst[i] = Between(r, min, max)
	}
	return dst
}

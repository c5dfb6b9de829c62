package fitness

import "math"

// Wave selects the trigonometric basis of a harmonic term
type Wave uint8

const (
	WaveSin Wave = iota
	WaveCos
)

// Harmonic is one Amplitude*wave(Frequency*x) term
type Harmonic struct {
	Amplitude float64
	Frequency float64
	Wave      Wave
}

// Value evaluates the term at x
func (h Harmonic) Value(x float64) float64 {
	arg := h.Frequency * x
	if h.Wave == WaveCos {
		return h.Amplitude * math.Cos(arg)
	}
	return h.Amplitude * math.Sin(arg)
}

// Landscape is a weighted harmonic sum: Scale*(sum of terms) + Offset
// Terms are summed in slice order so results are bit-reproducible
type Landscape struct {
	Terms  []Harmonic
	Scale  float64
	Offset float64
}

// Evaluate returns the fitness of position x (higher is better)
func (l Landscape) Evaluate(x float64) float64 {
	var sum float64
	for _, h := range l.Terms {
		// Conversions round each product, blocking FMA fusion
		sum += float64(h.Value(x))
	}
	return float64(sum*l.Scale) + l.Offset
}

// Default is the six-term multi-modal landscape the optimizer climbs
var Default = Landscape{
	Terms: []Harmonic{
		{Amplitude: 2, Frequency: 0.039, Wave: WaveCos},
		{Amplitude: 5, Frequency: 0.05, Wave: WaveSin},
		{Amplitude: 0.5, Frequency: 0.01, Wave: WaveCos},
		{Amplitude: 10, Frequency: 0.07, Wave: WaveSin},
		{Amplitude: 5, Frequency: 0.1, Wave: WaveSin},
		{Amplitude: 5, Frequency: 0.035, Wave: WaveSin},
	},
	Scale:  10,
	Offset: 500,
}

// Score evaluates the Default landscape
func Score(x float64) float64 {
	return Default.Evaluate(x)
}

// Bounds returns the theoretical score range of the landscape
// Every term is bounded by its absolute amplitude
func (l Landscape) Bounds() (lo, hi float64) {
	var amp float64
	for _, h := range l.Terms {
		amp += math.Abs(h.Amplitude)
	}
	spread := math.Abs(l.Scale) * amp
	return l.Offset - spread, l.Offset + spread
}

package audio

import (
	"math"

	"github.com/lixenwraith/evolve/parameter"
	"github.com/lixenwraith/evolve/vmath"
)

// timbre is the waveform of one part of a note
type timbre uint8

const (
	// timbreLead is a sine following the best score
	timbreLead timbre = iota
	// timbreMean is a sawtooth following the mean score
	timbreMean
	// timbreHiss is seeded noise whose level follows population spread
	timbreHiss
)

// voice renders one note of one timbre, shaped by a linear attack and release
// Every voice of a note shares the config's length, so a note's parts end together.
type voice struct {
	timbre  timbre
	step    float64 // phase advance per sample
	phase   float64
	level   float64
	pos     int
	total   int
	attack  int
	release int
	noise   *vmath.LCG
}

func newVoice(t timbre, freq, level float64, cfg SonifyConfig) *voice {
	v := &voice{
		timbre:  t,
		step:    freq / float64(cfg.SampleRate),
		level:   level,
		total:   cfg.NoteSamples(),
		attack:  cfg.SampleRate.N(cfg.Attack),
		release: cfg.SampleRate.N(cfg.Release),
	}
	if t == timbreHiss {
		// Fixed seed keeps rendered files byte-identical
		v.noise = vmath.NewLCG(parameter.SonifyNoiseSeed)
	}
	return v
}

// shape is the envelope gain at sample pos; attack wins where the ramps overlap
func (v *voice) shape(pos int) float64 {
	switch {
	case pos < v.attack:
		return float64(pos) / float64(v.attack)
	case v.release > 0 && pos >= v.total-v.release:
		return float64(v.total-pos) / float64(v.release)
	}
	return 1
}

func (v *voice) wave() float64 {
	switch v.timbre {
	case timbreLead:
		return math.Sin(2 * math.Pi * v.phase)
	case timbreMean:
		return 2*v.phase - 1
	default:
		return vmath.Between(v.noise, -1.0, 1.0)
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && v.pos < v.total {
		s := v.level * v.shape(v.pos) * v.wave()
		samples[n] = [2]float64{s, s}

		v.phase += v.step
		v.phase -= math.Floor(v.phase)
		v.pos++
		n++
	}
	return n, n > 0
}

func (v *voice) Err() error { return nil }

// Package audio renders optimizer convergence traces as sound
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/evolve/genetic/tracking"
	"github.com/lixenwraith/evolve/parameter"
)

// SonifyConfig controls how trace points map to notes
type SonifyConfig struct {
	SampleRate   beep.SampleRate
	LeadIn       time.Duration
	NoteDuration time.Duration
	Attack       time.Duration
	Release      time.Duration
	BaseFreq     float64
	Octaves      float64
	LeadVolume   float64
	MeanVolume   float64
	SpreadVolume float64
}

// DefaultSonifyConfig returns the parameter-backed defaults
func DefaultSonifyConfig() SonifyConfig {
	return SonifyConfig{
		SampleRate:   beep.SampleRate(parameter.AudioSampleRate),
		LeadIn:       parameter.SonifyLeadIn,
		NoteDuration: parameter.SonifyNoteDuration,
		Attack:       parameter.SonifyNoteAttack,
		Release:      parameter.SonifyNoteRelease,
		BaseFreq:     parameter.SonifyBaseFreq,
		Octaves:      parameter.SonifyOctaves,
		LeadVolume:   parameter.SonifyLeadVolume,
		MeanVolume:   parameter.SonifyMeanVolume,
		SpreadVolume: parameter.SonifySpreadVolume,
	}
}

// Pitch maps a score in [lo, hi] onto an exponential frequency scale
// Scores outside the range are clamped
func (c SonifyConfig) Pitch(score, lo, hi float64) float64 {
	return c.BaseFreq * math.Exp2(normalize(score, lo, hi)*c.Octaves)
}

// NoteSamples is the length of one note in samples
func (c SonifyConfig) NoteSamples() int {
	return c.SampleRate.N(c.NoteDuration)
}

// Sonify renders one note per trace point after LeadIn of silence
// The lead voice follows the best score, a quieter saw follows the mean,
// and a noise hiss scales with population spread so convergence fades it out.
func Sonify(points []tracking.Point, lo, hi float64, cfg SonifyConfig) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(points)+1)
	if n := cfg.SampleRate.N(cfg.LeadIn); n > 0 {
		notes = append(notes, generators.Silence(n))
	}
	for _, p := range points {
		notes = append(notes, note(p, lo, hi, cfg))
	}
	return beep.Seq(notes...)
}

func note(p tracking.Point, lo, hi float64, cfg SonifyConfig) beep.Streamer {
	spread := normalize(p.Spread(), 0, hi-lo)

	return beep.Mix(
		newVoice(timbreLead, cfg.Pitch(p.Max, lo, hi), cfg.LeadVolume, cfg),
		newVoice(timbreMean, cfg.Pitch(p.Mean, lo, hi), cfg.MeanVolume, cfg),
		newVoice(timbreHiss, 0, cfg.SpreadVolume*spread, cfg),
	)
}

// normalize maps v into [0, 1] over [lo, hi]
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	n := (v - lo) / (hi - lo)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

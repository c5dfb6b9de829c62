package parameter

import "time"

// Audio Format
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	// AudioPrecision is bytes per sample per channel (16-bit PCM)
	AudioPrecision = 2

	// AudioBufferDuration is the speaker buffer for live playback
	AudioBufferDuration = 100 * time.Millisecond
)

// Sonification - one note per trace point
const (
	// SonifyLeadIn is silence before the first note
	SonifyLeadIn = 250 * time.Millisecond

	SonifyNoteDuration = 60 * time.Millisecond
	SonifyNoteAttack   = 5 * time.Millisecond
	SonifyNoteRelease  = 15 * time.Millisecond

	// SonifyBaseFreq is the pitch of the lowest possible score (A2)
	SonifyBaseFreq = 110.0

	// SonifyOctaves spans the score range from lowest to highest pitch
	SonifyOctaves = 3.0
)

// Sonification - voice mix, sum stays within [-1, 1]
const (
	SonifyLeadVolume   = 0.5
	SonifyMeanVolume   = 0.25
	SonifySpreadVolume = 0.2

	// SonifyNoiseSeed seeds the LCG behind the spread hiss
	SonifyNoiseSeed = 0x5EED
)

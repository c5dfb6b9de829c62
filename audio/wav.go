package audio

import (
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"

	"github.com/lixenwraith/evolve/parameter"
)

// Format is the PCM layout of rendered files
func Format(rate beep.SampleRate) beep.Format {
	return beep.Format{
		SampleRate:  rate,
		NumChannels: parameter.AudioChannels,
		Precision:   parameter.AudioPrecision,
	}
}

// EncodeWAV drains s into w as a 16-bit stereo WAV file
func EncodeWAV(w io.WriteSeeker, s beep.Streamer, rate beep.SampleRate) error {
	if err := wav.Encode(w, s, Format(rate)); err != nil {
		return errors.Wrap(err, "audio: encode wav")
	}
	return nil
}

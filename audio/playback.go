package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/evolve/parameter"
)

// Play streams s to the default output device and blocks until it drains
func Play(s beep.Streamer, rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return errors.Wrap(err, "audio: init speaker")
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

// Command evolve-sonify renders a run's convergence trace as audio
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/evolve/audio"
	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/batch"
	"github.com/lixenwraith/evolve/genetic/fitness"
	"github.com/lixenwraith/evolve/genetic/tracking"
	"github.com/lixenwraith/evolve/logging"
	"github.com/lixenwraith/evolve/parameter"
)

var (
	outFlag   = flag.String("o", "evolve.wav", "output WAV file, empty to skip writing")
	seedFlag  = flag.Uint64("seed", parameter.Seed, "LCG seed")
	stepsFlag = flag.Int("steps", parameter.StepCount, "generations to run")
	everyFlag = flag.Int("every", parameter.TraceEvery, "steps per note")
	playFlag  = flag.Bool("play", false, "play through the default audio device")
	debugFlag = flag.Bool("debug", false, "write debug logs to "+parameter.LogDir)
)

type options struct {
	config genetic.Config
	sonify audio.SonifyConfig
	every  int
	out    string
	play   bool
	debug  bool
}

func main() {
	flag.Parse()

	config := genetic.DefaultConfig()
	config.Seed = *seedFlag
	config.StepCount = *stepsFlag

	opts := options{
		config: config,
		sonify: audio.DefaultSonifyConfig(),
		every:  *everyFlag,
		out:    *outFlag,
		play:   *playFlag,
		debug:  *debugFlag,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "evolve-sonify: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.out == "" && !opts.play {
		return errors.New("nothing to do: set -o or -play")
	}
	if opts.every < 1 {
		return errors.Errorf("-every must be at least 1, got %d", opts.every)
	}

	logger, cleanup, err := logging.Setup(parameter.LogDir, opts.debug)
	if err != nil {
		return errors.Wrap(err, "setup logging")
	}
	defer cleanup()

	points, err := trace(ctx, opts, logger)
	if err != nil {
		return err
	}
	lo, hi := fitness.Default.Bounds()

	// Streams drain once, so each sink gets its own render
	render := func() beep.Streamer { return audio.Sonify(points, lo, hi, opts.sonify) }

	if opts.out != "" {
		if err := writeFile(opts.out, render(), opts.sonify.SampleRate); err != nil {
			return err
		}
		logger.Debug("wav written",
			zap.String("path", opts.out),
			zap.Int("notes", len(points)),
		)
	}

	if opts.play {
		return audio.Play(render(), opts.sonify.SampleRate)
	}
	return nil
}

func trace(ctx context.Context, opts options, logger *zap.Logger) ([]tracking.Point, error) {
	r, err := batch.RunOne(ctx, opts.config, batch.Options{TraceEvery: opts.every, Logger: logger})
	if err != nil {
		return nil, err
	}
	return r.Trace, nil
}

func writeFile(path string, s beep.Streamer, rate beep.SampleRate) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := audio.EncodeWAV(f, s, rate); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}

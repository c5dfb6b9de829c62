// Command evolve-viewer shows the optimizer converging live in the terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/logging"
	"github.com/lixenwraith/evolve/parameter"
)

var (
	seedFlag          = flag.Uint64("seed", parameter.Seed, "LCG seed")
	stepsPerFrameFlag = flag.Int("steps-per-frame", parameter.StepsPerFrame, "generations run per frame")
	debugFlag         = flag.Bool("debug", false, "write debug logs to "+parameter.LogDir)
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "evolve-viewer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, cleanup, err := logging.Setup(parameter.LogDir, *debugFlag)
	if err != nil {
		return errors.Wrap(err, "setup logging")
	}
	defer cleanup()

	config := genetic.DefaultConfig()
	config.Seed = *seedFlag

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nEVOLVE-VIEWER CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	v, err := newViewer(screen, config, *stepsPerFrameFlag, logger)
	if err != nil {
		screen.Fini()
		return err
	}
	v.run()
	screen.Fini()
	return nil
}

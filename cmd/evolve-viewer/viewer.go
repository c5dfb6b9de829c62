package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/fitness"
	"github.com/lixenwraith/evolve/parameter"
	"github.com/lixenwraith/evolve/render"
)

// viewer steps an optimizer on the event loop and redraws every frame
type viewer struct {
	screen tcell.Screen
	plot   *render.Plot
	log    *zap.Logger

	config        genetic.Config
	opt           *genetic.Optimizer
	stepsPerFrame int
	paused        bool
}

func newViewer(screen tcell.Screen, config genetic.Config, stepsPerFrame int, log *zap.Logger) (*viewer, error) {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	v := &viewer{
		screen:        screen,
		plot:          render.NewPlot(screen, fitness.Default, config.MinX, config.MaxX),
		log:           log,
		config:        config,
		stepsPerFrame: stepsPerFrame,
	}
	if err := v.restart(); err != nil {
		return nil, err
	}
	return v, nil
}

// restart replaces the optimizer with a fresh, initialized one
func (v *viewer) restart() error {
	opt, err := genetic.New(v.config, genetic.WithLogger(v.log))
	if err != nil {
		return err
	}
	opt.Init()
	v.opt = opt
	v.log.Debug("viewer restarted", zap.Uint64("seed", v.config.Seed))
	return nil
}

// advance runs up to n steps, stopping early on completion
func (v *viewer) advance(n int) {
	for i := 0; i < n; i++ {
		if !v.opt.Step() {
			return
		}
	}
}

func (v *viewer) frame() render.Frame {
	return render.Frame{
		Step:       v.opt.StepsDone(),
		StepCount:  v.config.StepCount,
		State:      v.opt.State(),
		Population: v.opt.Population(),
		Paused:     v.paused,
	}
}

func (v *viewer) draw() {
	v.plot.Draw(v.frame())
}

// tick advances one frame's worth of steps unless paused
func (v *viewer) tick() {
	if !v.paused {
		v.advance(v.stepsPerFrame)
	}
	v.draw()
}

// handleInput applies one event and reports whether the viewer should keep running
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			v.paused = !v.paused
		case 's':
			// Single step implies pause
			v.paused = true
			v.advance(1)
		case 'r':
			if err := v.restart(); err != nil {
				v.log.Error("restart failed", zap.Error(err))
			}
		}
		v.draw()

	case *tcell.EventResize:
		v.screen.Sync()
		v.plot.Resize()
		v.draw()
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.tick()
		}
	}
}

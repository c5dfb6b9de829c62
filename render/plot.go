// Package render draws the fitness landscape and a live population onto a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/fitness"
	"github.com/lixenwraith/evolve/parameter"
)

var (
	curveStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	indStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bestStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	pausedStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
)

// Frame is the state shown by one redraw
type Frame struct {
	Step       int
	StepCount  int
	State      genetic.State
	Population genetic.Population
	Paused     bool
}

// Plot maps domain and score onto screen cells
// X spans [minX, maxX] across the full width; scores span the landscape bounds
// between the status line and the help line.
type Plot struct {
	screen        tcell.Screen
	width, height int

	landscape  fitness.Landscape
	minX, maxX float64
	lo, hi     float64

	// curve holds the landscape row of each column, -1 when hidden
	curve []int
}

// NewPlot creates a plot over [minX, maxX] sized to the screen
func NewPlot(screen tcell.Screen, landscape fitness.Landscape, minX, maxX float64) *Plot {
	lo, hi := landscape.Bounds()
	p := &Plot{
		screen:    screen,
		landscape: landscape,
		minX:      minX,
		maxX:      maxX,
		lo:        lo,
		hi:        hi,
	}
	p.Resize()
	return p
}

// Resize re-reads the screen size and rebuilds the cached curve
func (p *Plot) Resize() {
	p.width, p.height = p.screen.Size()

	p.curve = p.curve[:0]
	for c := 0; c < p.width; c++ {
		p.curve = append(p.curve, p.Row(p.landscape.Evaluate(p.columnX(c))))
	}
}

// Size returns the cached screen dimensions
func (p *Plot) Size() (int, int) {
	return p.width, p.height
}

// Column maps a domain position to a screen column, clamped to the screen
func (p *Plot) Column(x float64) int {
	if p.width <= 1 || p.maxX <= p.minX {
		return 0
	}
	c := int(math.Round((x - p.minX) / (p.maxX - p.minX) * float64(p.width-1)))
	return clamp(c, 0, p.width-1)
}

// Row maps a score to a screen row inside the plot area; -1 if the area is too small
func (p *Plot) Row(score float64) int {
	top := parameter.TopMargin
	bottom := p.height - parameter.BottomMargin - 1
	if bottom-top+1 < parameter.MinPlotHeight {
		return -1
	}
	n := 0.0
	if p.hi > p.lo {
		n = (score - p.lo) / (p.hi - p.lo)
	}
	r := bottom - int(math.Round(n*float64(bottom-top)))
	return clamp(r, top, bottom)
}

func (p *Plot) columnX(c int) float64 {
	if p.width <= 1 {
		return p.minX
	}
	return p.minX + (p.maxX-p.minX)*float64(c)/float64(p.width-1)
}

// Draw clears the screen and renders the frame
func (p *Plot) Draw(f Frame) {
	p.screen.Clear()

	for c, r := range p.curve {
		if r >= 0 {
			p.screen.SetContent(c, r, parameter.CurveChar, nil, curveStyle)
		}
	}

	if len(f.Population) > 0 {
		stats := genetic.Measure(f.Population)
		for _, ind := range f.Population {
			if ind.ID == stats.Best.ID {
				continue
			}
			p.plot(ind, parameter.IndividualChar, indStyle)
		}
		// Best drawn last so it stays visible when cells collide
		p.plot(stats.Best, parameter.BestChar, bestStyle)
		p.drawText(0, 0, statusLine(f, stats), p.statusStyle(f))
	} else {
		p.drawText(0, 0, fmt.Sprintf(" step %d/%d  %s", f.Step, f.StepCount, f.State), p.statusStyle(f))
	}

	p.drawText(0, p.height-1, parameter.HelpText, helpStyle)
	p.screen.Show()
}

func (p *Plot) plot(ind genetic.Individual, ch rune, style tcell.Style) {
	r := p.Row(ind.Score())
	if r < 0 {
		return
	}
	p.screen.SetContent(p.Column(ind.X), r, ch, nil, style)
}

func (p *Plot) statusStyle(f Frame) tcell.Style {
	if f.Paused {
		return pausedStyle
	}
	return statusStyle
}

// drawText writes s from (x, y), clipped to the screen width
func (p *Plot) drawText(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= p.height {
		return
	}
	for _, ch := range s {
		if x >= p.width {
			return
		}
		p.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func statusLine(f Frame, s genetic.Stats) string {
	state := f.State.String()
	if f.Paused {
		state = "paused"
	}
	return fmt.Sprintf(" step %d/%d  %s  min %.6g  max %.6g  avg %.6g  best (%d, x=%.6g)",
		f.Step, f.StepCount, state, s.Min, s.Max, s.Mean, s.Best.ID, s.Best.X)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

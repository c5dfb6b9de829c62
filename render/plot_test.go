package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/fitness"
	"github.com/lixenwraith/evolve/parameter"
)

func newTestPlot(t *testing.T, w, h int) (*Plot, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	return NewPlot(screen, fitness.Default, parameter.MinX, parameter.MaxX), screen
}

func rowText(screen tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestColumn(t *testing.T) {
	p, _ := newTestPlot(t, 101, 24)
	if w, _ := p.Size(); w != 101 {
		t.Fatalf("expected width 101, got %d", w)
	}

	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{1000, 100},
		{500, 50},
		{-10, 0},
		{5000, 100},
	}
	for _, tc := range tests {
		if got := p.Column(tc.x); got != tc.want {
			t.Errorf("Column(%v): expected %d, got %d", tc.x, tc.want, got)
		}
	}
}

func TestRow(t *testing.T) {
	p, _ := newTestPlot(t, 80, 24)
	lo, hi := fitness.Default.Bounds()

	_, h := p.Size()
	top := parameter.TopMargin
	bottom := h - parameter.BottomMargin - 1

	if got := p.Row(hi); got != top {
		t.Errorf("expected top row %d for max score, got %d", top, got)
	}
	if got := p.Row(lo); got != bottom {
		t.Errorf("expected bottom row %d for min score, got %d", bottom, got)
	}
	if got := p.Row(hi + 100); got != top {
		t.Errorf("expected clamped row %d, got %d", top, got)
	}
	if p.Row(600) >= p.Row(400) {
		t.Error("expected higher score on a higher row")
	}
}

func TestRow_TooSmall(t *testing.T) {
	p, _ := newTestPlot(t, 80, 3)
	if got := p.Row(500); got != -1 {
		t.Errorf("expected -1 for a screen without plot area, got %d", got)
	}
}

func TestDraw_PopulationAndStatus(t *testing.T) {
	const w, h = 80, 24
	p, screen := newTestPlot(t, w, h)

	o, err := genetic.New(genetic.DefaultConfig())
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	o.Init()
	pop := o.Population()
	best := genetic.Measure(pop).Best

	p.Draw(Frame{Step: 0, StepCount: parameter.StepCount, State: o.State(), Population: pop})

	ch, _, _, _ := screen.GetContent(p.Column(best.X), p.Row(best.Score()))
	if ch != parameter.BestChar {
		t.Errorf("expected best marker %q, got %q", parameter.BestChar, ch)
	}

	status := rowText(screen, 0, w)
	if !strings.Contains(status, "step 0/15000") || !strings.Contains(status, "running") {
		t.Errorf("unexpected status line %q", status)
	}

	_, height := p.Size()
	help := rowText(screen, height-1, w)
	if !strings.HasPrefix(help, parameter.HelpText) {
		t.Errorf("expected help line, got %q", help)
	}
}

func TestDraw_Curve(t *testing.T) {
	const w, h = 60, 20
	p, screen := newTestPlot(t, w, h)

	p.Draw(Frame{State: genetic.StateUninitialized})

	for c := 0; c < w; c++ {
		r := p.Row(fitness.Score(p.columnX(c)))
		ch, _, _, _ := screen.GetContent(c, r)
		if ch != parameter.CurveChar {
			t.Errorf("column %d: expected curve at row %d, got %q", c, r, ch)
		}
	}
}

func TestDraw_Paused(t *testing.T) {
	const w, h = 120, 10
	p, screen := newTestPlot(t, w, h)

	pop := genetic.Population{{ID: 0, X: 100}, {ID: 1, X: 200}}
	p.Draw(Frame{Step: 7, StepCount: 10, State: genetic.StateRunning, Population: pop, Paused: true})

	status := rowText(screen, 0, w)
	if !strings.Contains(status, "paused") {
		t.Errorf("expected paused status, got %q", status)
	}
	if p.statusStyle(Frame{Paused: true}) != pausedStyle {
		t.Error("expected paused style for a paused frame")
	}
}

func TestResize(t *testing.T) {
	p, screen := newTestPlot(t, 40, 12)
	screen.SetSize(100, 30)
	p.Resize()

	if w, h := p.Size(); w != 100 || h != 30 {
		t.Errorf("expected 100x30, got %dx%d", w, h)
	}
	if len(p.curve) != 100 {
		t.Errorf("expected 100 curve columns, got %d", len(p.curve))
	}
}

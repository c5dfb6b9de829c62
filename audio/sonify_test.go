package audio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/fitness"
	"github.com/lixenwraith/evolve/genetic/tracking"
)

func testConfig() SonifyConfig {
	cfg := DefaultSonifyConfig()
	cfg.SampleRate = 8000
	cfg.LeadIn = 0
	cfg.NoteDuration = 20 * time.Millisecond
	cfg.Attack = 2 * time.Millisecond
	cfg.Release = 5 * time.Millisecond
	return cfg
}

func tracePoints(t *testing.T) []tracking.Point {
	t.Helper()
	config := genetic.DefaultConfig()
	config.StepCount = 500

	trace := tracking.NewTrace(100)
	o, err := genetic.New(config, genetic.WithObserver(trace))
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	pop := o.Run()
	return trace.Finalize(o.StepsDone(), pop)
}

func TestPitch(t *testing.T) {
	cfg := DefaultSonifyConfig()
	lo, hi := 0.0, 100.0

	if got := cfg.Pitch(lo, lo, hi); got != cfg.BaseFreq {
		t.Errorf("expected base frequency %v, got %v", cfg.BaseFreq, got)
	}
	if got, want := cfg.Pitch(hi, lo, hi), cfg.BaseFreq*8; got != want {
		t.Errorf("expected top frequency %v, got %v", want, got)
	}
	if got := cfg.Pitch(-50, lo, hi); got != cfg.BaseFreq {
		t.Errorf("expected clamped low pitch %v, got %v", cfg.BaseFreq, got)
	}
	if got, want := cfg.Pitch(500, lo, hi), cfg.BaseFreq*8; got != want {
		t.Errorf("expected clamped high pitch %v, got %v", want, got)
	}
	if got := cfg.Pitch(5, 10, 10); got != cfg.BaseFreq {
		t.Errorf("expected degenerate range to map to base, got %v", got)
	}
}

func TestSonify_Length(t *testing.T) {
	cfg := testConfig()
	points := tracePoints(t)
	lo, hi := fitness.Default.Bounds()

	out := drain(Sonify(points, lo, hi, cfg))

	if want := len(points) * cfg.NoteSamples(); len(out) != want {
		t.Errorf("expected %d samples, got %d", want, len(out))
	}
}

func TestSonify_LeadIn(t *testing.T) {
	cfg := testConfig()
	cfg.LeadIn = 10 * time.Millisecond
	lo, hi := fitness.Default.Bounds()
	points := []tracking.Point{{Step: 0, Min: lo, Max: hi, Mean: hi}}

	out := drain(Sonify(points, lo, hi, cfg))

	silent := cfg.SampleRate.N(cfg.LeadIn)
	if want := silent + cfg.NoteSamples(); len(out) != want {
		t.Fatalf("expected %d samples, got %d", want, len(out))
	}
	for i := 0; i < silent; i++ {
		if out[i] != [2]float64{} {
			t.Fatalf("expected silence at %d, got %v", i, out[i])
		}
	}
}

func TestSonify_Bounded(t *testing.T) {
	cfg := testConfig()
	lo, hi := fitness.Default.Bounds()

	// Widest possible spread drives the hiss to full volume
	points := []tracking.Point{
		{Step: 0, Min: lo, Max: hi, Mean: (lo + hi) / 2},
		{Step: 1, Min: hi, Max: hi, Mean: hi},
	}

	for i, s := range drain(Sonify(points, lo, hi, cfg)) {
		if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestSonify_Deterministic(t *testing.T) {
	cfg := testConfig()
	points := tracePoints(t)
	lo, hi := fitness.Default.Bounds()

	a := drain(Sonify(points, lo, hi, cfg))
	b := drain(Sonify(points, lo, hi, cfg))
	if len(a) != len(b) {
		t.Fatalf("expected equal lengths, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSonify_Empty(t *testing.T) {
	out := drain(Sonify(nil, 0, 1, testConfig()))
	if len(out) != 0 {
		t.Errorf("expected no samples, got %d", len(out))
	}
}

func TestEncodeWAV(t *testing.T) {
	cfg := testConfig()
	lo, hi := fitness.Default.Bounds()
	points := tracePoints(t)

	path := filepath.Join(t.TempDir(), "trace.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := EncodeWAV(f, Sonify(points, lo, hi, cfg), cfg.SampleRate); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || string(data[8:12]) != "WAVE" {
		t.Fatalf("expected RIFF/WAVE header, got %q", data[:12])
	}

	format := Format(cfg.SampleRate)
	pcm := len(points) * cfg.NoteSamples() * format.Width()
	if want := 44 + pcm; len(data) != want {
		t.Errorf("expected %d bytes, got %d", want, len(data))
	}
}

type failingSeeker struct{}

func (failingSeeker) Write([]byte) (int, error)      { return 0, io.ErrClosedPipe }
func (failingSeeker) Seek(int64, int) (int64, error) { return 0, io.ErrClosedPipe }

func TestEncodeWAV_WriteError(t *testing.T) {
	s := newVoice(timbreLead, 440, 1, testConfig())
	if err := EncodeWAV(failingSeeker{}, s, 8000); err == nil {
		t.Error("expected write error")
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Summary(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), buf.String())
	}

	wantPrefixes := []string{
		"Count: 10, steps: 15000",
		"Seed: 123",
		"Results:",
		"  min:  ",
		"  max:  ",
		"  avg:  ",
		"  best: (",
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d: expected prefix %q, got %q", i, want, lines[i])
		}
	}
}

func TestRun_Baseline(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	expected := "Count: 10, steps: 15000\n" +
		"Seed: 123\n" +
		"Results:\n" +
		"  min:  738.098\n" +
		"  max:  738.112\n" +
		"  avg:  738.104\n" +
		"  best: (0, x=21.1523, score=738.112)\n"
	if buf.String() != expected {
		t.Errorf("expected baseline output\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestRun_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := run(&a); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := run(&b); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("expected identical output, got\n%s\nvs\n%s", a.String(), b.String())
	}
}

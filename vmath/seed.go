package vmath

import (
	"runtime/debug"
	"time"
)

// BuildClock is the HH:MM:SS build time, set with
//
//	go build -ldflags "-X github.com/lixenwraith/evolve/vmath.BuildClock=$(date +%H:%M:%S)"
var BuildClock string

// DefaultSeed returns the seconds-of-day of the build clock
// Falls back to the VCS commit time embedded in build info, then to 0
func DefaultSeed() uint64 {
	if s, ok := clockSeconds(BuildClock); ok {
		return s
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key != "vcs.time" {
				continue
			}
			if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
				return uint64(t.Hour()*3600 + t.Minute()*60 + t.Second())
			}
		}
	}
	return 0
}

// NewDefaultLCG returns a generator seeded from DefaultSeed
func NewDefaultLCG() *LCG {
	return NewLCG(DefaultSeed())
}

// clockSeconds parses a zero-padded HH:MM:SS clock
func clockSeconds(clock string) (uint64, bool) {
	if len(clock) != 8 || clock[2] != ':' || clock[5] != ':' {
		return 0, false
	}
	var fields [3]uint64
	for i := range fields {
		hi, lo := clock[i*3], clock[i*3+1]
		if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
			return 0, false
		}
		fields[i] = uint64(hi-'0')*10 + uint64(lo-'0')
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], true
}

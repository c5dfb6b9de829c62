// Package batch runs independent optimizers concurrently, one per configuration
// Each optimizer stays single-threaded; parallelism is only across runs.
package batch

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/tracking"
	"github.com/lixenwraith/evolve/parameter"
)

// Result is one finished run
type Result struct {
	Config     genetic.Config
	Population genetic.Population
	Stats      genetic.Stats
	// Trace is nil when tracing is disabled
	Trace []tracking.Point
}

// Options controls a batch
type Options struct {
	// Workers bounds concurrent runs; 0 uses GOMAXPROCS
	Workers int
	// TraceEvery records a trace point every N steps; 0 disables tracing
	TraceEvery int
	Logger     *zap.Logger
}

// Seeds returns n copies of base with consecutive seeds starting at base.Seed
// Seeds wrap modulo 2^64, so a batch starting near MaxUint64 continues at 0.
func Seeds(base genetic.Config, n int) []genetic.Config {
	configs := make([]genetic.Config, n)
	for i := range configs {
		configs[i] = base
		configs[i].Seed = base.Seed + uint64(i)
	}
	return configs
}

// RunOne runs a single configuration to completion
func RunOne(ctx context.Context, config genetic.Config, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	genOpts := []genetic.Option{genetic.WithLogger(logger)}

	var trace *tracking.Trace
	if opts.TraceEvery > 0 {
		trace = tracking.NewTrace(opts.TraceEvery)
		genOpts = append(genOpts, genetic.WithObserver(trace))
	}

	o, err := genetic.New(config, genOpts...)
	if err != nil {
		return Result{}, err
	}
	pop, err := o.RunContext(ctx)
	if err != nil {
		return Result{}, err
	}

	r := Result{
		Config:     config,
		Population: pop,
		Stats:      genetic.Measure(pop),
	}
	if trace != nil {
		r.Trace = trace.Finalize(o.StepsDone(), pop)
	}
	return r, nil
}

// Run executes every configuration and returns results in input order
// The first failure cancels the remaining runs.
func Run(ctx context.Context, configs []genetic.Config, opts Options) ([]Result, error) {
	if len(configs) > parameter.BatchMaxRuns {
		return nil, errors.Errorf("batch: %d runs exceeds limit %d", len(configs), parameter.BatchMaxRuns)
	}

	// Reject bad input before starting any work
	for i, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, errors.Wrapf(err, "batch: run %d", i)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range configs {
		g.Go(func() error {
			r, err := RunOne(ctx, c, opts)
			if err != nil {
				return errors.Wrapf(err, "batch: run %d (seed %d)", i, c.Seed)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Best returns the index of the result with the highest max score
// Earlier results win ties; -1 for an empty slice.
func Best(results []Result) int {
	best := -1
	for i, r := range results {
		if best < 0 || r.Stats.Max > results[best].Stats.Max {
			best = i
		}
	}
	return best
}

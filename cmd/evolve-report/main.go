// Command evolve-report runs the optimizer and prints the full run report
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/batch"
	"github.com/lixenwraith/evolve/genetic/export"
	"github.com/lixenwraith/evolve/logging"
	"github.com/lixenwraith/evolve/parameter"
	"github.com/lixenwraith/evolve/vmath"
)

var (
	seedFlag       = flag.Uint64("seed", parameter.Seed, "LCG seed")
	buildSeedFlag  = flag.Bool("build-seed", false, "seed from the build clock, overrides -seed")
	countFlag      = flag.Int("count", parameter.PopulationCount, "population size")
	stepsFlag      = flag.Int("steps", parameter.StepCount, "generations to run")
	everyFlag      = flag.Int("every", parameter.TraceEvery, "trace stride in steps, 0 omits the trace")
	mutateBestFlag = flag.Bool("mutate-best", false, "also mutate the best individual every step")
	runsFlag       = flag.Int("runs", 1, "independent runs with consecutive seeds")
	workersFlag    = flag.Int("workers", 0, "concurrent runs, 0 uses all CPUs")
	formatFlag     = flag.String("format", "toml", "output format: toml, markdown, html")
	xlsxFlag       = flag.String("xlsx", "", "also write a single-run workbook to this path")
	debugFlag      = flag.Bool("debug", false, "write debug logs to "+parameter.LogDir)
)

// options is the parsed command line
type options struct {
	config  genetic.Config
	every   int
	runs    int
	workers int
	format  export.Format
	xlsx    string
	debug   bool
}

func main() {
	flag.Parse()

	config := genetic.DefaultConfig()
	config.Seed = *seedFlag
	config.PopulationCount = *countFlag
	config.StepCount = *stepsFlag
	config.MutateBest = *mutateBestFlag
	if *buildSeedFlag {
		config.Seed = vmath.DefaultSeed()
	}

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evolve-report: %v\n", err)
		os.Exit(2)
	}

	opts := options{
		config:  config,
		every:   *everyFlag,
		runs:    *runsFlag,
		workers: *workersFlag,
		format:  format,
		xlsx:    *xlsxFlag,
		debug:   *debugFlag,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "evolve-report: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, opts options) error {
	if opts.runs < 1 {
		return errors.Errorf("-runs must be at least 1, got %d", opts.runs)
	}
	if opts.xlsx != "" && opts.runs != 1 {
		return errors.New("-xlsx needs a single run")
	}

	logger, cleanup, err := logging.Setup(parameter.LogDir, opts.debug)
	if err != nil {
		return errors.Wrap(err, "setup logging")
	}
	defer cleanup()

	batchOpts := batch.Options{
		Workers:    opts.workers,
		TraceEvery: opts.every,
		Logger:     logger,
	}

	if opts.runs == 1 {
		r, err := batch.RunOne(ctx, opts.config, batchOpts)
		if err != nil {
			return err
		}
		dto := export.FromRun(r.Config, r.Population, r.Trace)
		if opts.xlsx != "" {
			if err := writeXLSX(opts.xlsx, dto); err != nil {
				return err
			}
		}
		return export.Render(w, dto, opts.format)
	}

	results, err := batch.Run(ctx, batch.Seeds(opts.config, opts.runs), batchOpts)
	if err != nil {
		return err
	}

	var dto export.BatchDTO
	for _, r := range results {
		dto.Runs = append(dto.Runs, export.FromRun(r.Config, r.Population, r.Trace))
	}
	if i := batch.Best(results); i >= 0 {
		logger.Debug("batch finished",
			zap.Int("runs", len(results)),
			zap.Uint64("best_seed", results[i].Config.Seed),
			zap.Float64("best_max", results[i].Stats.Max),
		)
	}
	return export.RenderBatch(w, dto, opts.format)
}

func writeXLSX(path string, dto export.ReportDTO) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create workbook")
	}
	if err := export.WriteXLSX(f, dto); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close workbook")
}

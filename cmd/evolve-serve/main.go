// Command evolve-serve serves optimizer runs over HTTP
//
// Endpoints: /healthz, /summary, /report and /batch, all GET with query parameters
// count, steps, seed and mutate_best; /report adds every and format, /batch adds runs and format.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/evolve/logging"
	"github.com/lixenwraith/evolve/parameter"
	"github.com/lixenwraith/evolve/server"
)

var (
	addrFlag  = flag.String("addr", "", "listen address, default $"+parameter.ServeAddrEnv+" or "+parameter.ServeAddr)
	debugFlag = flag.Bool("debug", false, "write debug logs to "+parameter.LogDir)
)

func main() {
	flag.Parse()

	// A missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, resolveAddr(*addrFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "evolve-serve: %v\n", err)
		os.Exit(1)
	}
}

// resolveAddr prefers the flag, then the environment, then the default
func resolveAddr(flagAddr string) string {
	if flagAddr != "" {
		return flagAddr
	}
	if env := os.Getenv(parameter.ServeAddrEnv); env != "" {
		return env
	}
	return parameter.ServeAddr
}

func run(ctx context.Context, addr string) error {
	logger, cleanup, err := logging.Setup(parameter.LogDir, *debugFlag)
	if err != nil {
		return errors.Wrap(err, "setup logging")
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(logger),
		ReadHeaderTimeout: parameter.ServeReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Debug("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.ServeShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

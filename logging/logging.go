// Package logging builds the zap loggers used by the command-line tools
// Logging is off unless debug is requested; debug output never reaches stdout or stderr
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/evolve/parameter"
)

// Setup returns a logger and its cleanup function
// When debug is false the logger is a no-op. Otherwise JSON entries are appended to
// dir/evolve.log, rotating the previous file aside once it exceeds MaxLogSize.
func Setup(dir string, debug bool) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, errors.Wrap(err, "create log directory")
	}

	path := filepath.Join(dir, parameter.LogFileName)
	if err := rotate(path, dir); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(f),
		zap.DebugLevel,
	)
	logger := zap.New(core)

	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

// rotate renames an oversized log to a timestamped sibling
func rotate(path, dir string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "stat log file")
	}
	if info.Size() <= parameter.MaxLogSize {
		return nil
	}

	rotated := filepath.Join(dir, fmt.Sprintf("evolve-%s.log", time.Now().Format("20060102-150405")))
	if err := os.Rename(path, rotated); err != nil {
		return errors.Wrap(err, "rotate log file")
	}
	return nil
}

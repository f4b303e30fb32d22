package cli

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the event logger. The interactive widget owns the
// terminal, so it only ever logs to a file; other commands may fall back to
// stderr when verbose.
func newLogger(path string, verbose, interactive bool) (*zap.Logger, error) {
	if path == "" {
		if interactive || !verbose {
			return zap.NewNop(), nil
		}
		path = "stderr"
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose || path != "stderr" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// logger.go
package goflames

import (
	"log/slog"
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_flames/internal/adapters/logger"
)

// createDefaultLogger creates a synchronous stderr logger, keeping stdout free
// for the caller.
func createDefaultLogger() (l.Logger, error) {
	return logger.New(logger.ConsoleConfig(os.Stderr, slog.LevelWarn))
}

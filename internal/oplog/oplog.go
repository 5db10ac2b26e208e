// Package oplog writes the operational log: one structured JSON line per
// ledger mutation, appended under the workspace logs area. It is an audit
// convenience, not the ledger's source of truth.
package oplog

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = "tally.log"

// Logger appends operational events to logs/tally.log.
type Logger struct {
	zl *zap.Logger
}

// Open creates (or appends to) the operational log under logsDir.
func Open(logsDir string) (*Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logsDir, logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening operational log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.InfoLevel)
	return &Logger{zl: zap.New(core)}, nil
}

// Nop returns a logger that discards everything, for callers that have no
// workspace (for example pure in-memory use).
func Nop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// Event records one operational event with structured fields.
func (l *Logger) Event(action string, fields ...zap.Field) {
	l.zl.Info(action, fields...)
}

// Close flushes buffered log entries.
func (l *Logger) Close() error {
	return l.zl.Sync()
}

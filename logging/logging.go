// Package logging builds the zap loggers used across the module. Loggers are
// constructed here and passed down explicitly; nothing reads a global.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures log output.
type Options struct {
	// FilePath enables rolling file output when non-empty.
	FilePath string
	// Debug lowers the level from Info to Debug.
	Debug bool
}

// New builds a console-encoded logger. With a FilePath set, output goes to a
// rolling file (10MB per file, 3 backups, 7 days); otherwise to stderr.
func New(opts Options) *zap.Logger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	var sink zapcore.WriteSyncer
	if opts.FilePath != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)
	return zap.New(core, zap.AddCaller())
}

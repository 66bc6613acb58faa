// Package logging builds the bot's logger: human-readable output on
// standard error plus a size-capped rotating file that keeps error-level
// events for later inspection.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options sizes the rotating error log file.
type Options struct {
	FilePath   string // empty disables the file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New creates the logger. The console core logs info and above; the file
// core records only errors, rotated by lumberjack so the log directory
// stays bounded.
func New(opts Options) *zap.SugaredLogger {
	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zapcore.InfoLevel),
	}

	if opts.FilePath != "" {
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		rotating := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotating), zapcore.ErrorLevel))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar()
}

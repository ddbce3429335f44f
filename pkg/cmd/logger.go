package cmd

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	explorer "github.com/worldtrends/explorer/pkg"
)

const (
	logMaxSizeMB  = 100
	logMaxBackups = 5
	logMaxAgeDays = 28
)

// NewLogger builds the service logger. Production uses the JSON encoder;
// a non-empty logFile additionally writes JSON lines to a rotated file.
func NewLogger(logFile string) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	if explorer.Production() {
		config = zap.NewProductionConfig()
	}

	level := zap.InfoLevel
	if explorer.Debug() {
		level = zap.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to build logger: %w", err)
	}
	if logFile == "" {
		return l, nil
	}

	rotated := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	})
	file := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), rotated, config.Level)

	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, file)
	})), nil
}

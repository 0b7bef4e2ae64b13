// Package logger builds the colored, component-named zap loggers used across the sandbox.
package logger

import (
	"errors"
	"io"

	"github.com/beka-birhanu/mazebot/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrEmptyName is returned when a logger is requested without a component name.
var ErrEmptyName = errors.New("logger name must not be empty")

// New creates a console logger writing to w. Every entry is prefixed with name
// painted in color. Entries below level are dropped.
func New(name, color string, w io.Writer, level zapcore.Level) (*zap.Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeName = func(n string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(color + "[" + n + "]" + config.ColorReset)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core).Named(name), nil
}

// ParseLevel converts a level name such as "debug" into a zap level,
// falling back to info for unknown names.
func ParseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

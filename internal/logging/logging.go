// package logging builds the zap loggers used across the client and the CLI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	EncodingJSON    = "json"
	EncodingConsole = "console"
)

type Config struct {
	Level        string `yaml:"level"`    // debug, info, warn or error. default info
	Mode         string `yaml:"mode"`     // production or development
	Encoding     string `yaml:"encoding"` // json or console, defaults follow the mode
	ColorEnabled bool   `yaml:"color"`    // colored levels, console encoding only
}

func (c Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Mode) {
	case "", ModeProduction, ModeDevelopment:
	default:
		return fmt.Errorf("invalid log mode %q", c.Mode)
	}
	switch strings.ToLower(c.Encoding) {
	case "", EncodingJSON, EncodingConsole:
	default:
		return fmt.Errorf("invalid log encoding %q", c.Encoding)
	}
	return nil
}

func (c Config) level() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return l, nil
}

// New builds a logger writing to stderr.
func New(c Config) (*zap.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := c.level()

	var zc zap.Config
	if strings.EqualFold(c.Mode, ModeDevelopment) {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if c.Encoding != "" {
		zc.Encoding = strings.ToLower(c.Encoding)
	}
	if zc.Encoding == EncodingConsole {
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if c.ColorEnabled {
			zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

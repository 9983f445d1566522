package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output encodings.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options override the environment defaults. Empty fields keep them.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New creates a zap logger for the given environment.
// prod logs JSON at info, local/dev/docker log colored console output at debug.
func New(env string, opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	switch opts.Format {
	case "":
	case FormatJSON:
		cfg.Encoding = FormatJSON
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
	case FormatConsole:
		cfg.Encoding = FormatConsole
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	if opts.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kndndrj/dbexport/core"
)

// Config describes how to build the zap logger.
// Level is one of "debug", "info", "warn", "error" (default "info").
// DevMode switches from JSON to human readable console output.
type Config struct {
	Level   string
	DevMode bool
}

func (c *Config) applyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c Config) validate() error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("logger: invalid level %q: %w", c.Level, err)
	}
	return nil
}

var _ core.Logger = (*Logger)(nil)

// Logger is a thin wrapper around *zap.SugaredLogger.
type Logger struct {
	raw *zap.SugaredLogger
}

// New builds a logger writing to stderr, so stdout stays reserved for the report.
func New(cfg Config) (*Logger, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	zapCfg := buildZapConfig(cfg.DevMode)
	if err := setZapLevel(&zapCfg, cfg.Level); err != nil {
		return nil, err
	}

	zl, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build zap: %w", err)
	}
	return NewFromZap(zl), nil
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(zl *zap.Logger) *Logger {
	return &Logger{raw: zl.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{raw: zap.NewNop().Sugar()}
}

func buildZapConfig(dev bool) zap.Config {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.StacktraceKey = "stacktrace"
	}

	ec := &cfg.EncoderConfig
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.CallerKey = "caller"
	ec.EncodeCaller = zapcore.ShortCallerEncoder

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg
}

func setZapLevel(cfg *zap.Config, level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return nil
}

// Named creates a sub-logger with a name segment.
func (l *Logger) Named(name string) *Logger {
	return &Logger{raw: l.raw.Named(name)}
}

// With adds structured context to the logger.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{raw: l.raw.With(args...)}
}

// Sync flushes buffered entries, errors are ignored.
func (l *Logger) Sync() { _ = l.raw.Sync() }

func (l *Logger) Debug(msg string)                  { l.raw.Debug(msg) }
func (l *Logger) Debugf(format string, args ...any) { l.raw.Debugf(format, args...) }
func (l *Logger) Info(msg string)                   { l.raw.Info(msg) }
func (l *Logger) Infof(format string, args ...any)  { l.raw.Infof(format, args...) }
func (l *Logger) Warn(msg string)                   { l.raw.Warn(msg) }
func (l *Logger) Warnf(format string, args ...any)  { l.raw.Warnf(format, args...) }
func (l *Logger) Error(msg string)                  { l.raw.Error(msg) }
func (l *Logger) Errorf(format string, args ...any) { l.raw.Errorf(format, args...) }

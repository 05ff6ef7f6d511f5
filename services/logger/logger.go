package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the printf-style logging interface services depend on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Config selects level and encoder
type Config struct {
	Level       string
	Environment string
	ServiceName string
}

// ZapLogger implements Logger on top of a zap SugaredLogger
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a JSON logger in production and a colored console logger otherwise
func New(cfg Config) (*ZapLogger, error) {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	var zc zap.Config
	if cfg.Environment == "production" {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = level

	base, err := zc.Build(zap.Fields(
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
	))
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(base)
	return Wrap(base), nil
}

// Wrap adapts an existing zap logger
func Wrap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

// NewNop discards everything, used in tests
func NewNop() *ZapLogger {
	return Wrap(zap.NewNop())
}

// Zap exposes the structured logger for middleware
func (l *ZapLogger) Zap() *zap.Logger {
	return l.base
}

func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func (l *ZapLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *ZapLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *ZapLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

func (l *ZapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

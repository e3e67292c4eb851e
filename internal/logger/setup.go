// Package logger provides the structured zap-based logger used across the
// application. It favors JSON output with ISO8601 timestamps and constant
// service/pid fields, and exposes a small leveled API that carries an
// optional error plus free-form key-value fields.
package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps Uber's Zap logger.
//
// Zap is exposed for the rare cases that need direct access; everything else
// should go through the leveled wrapper methods. All methods are safe for
// concurrent use.
type LoggerClient struct {
	Zap *zap.Logger
}

// NewLoggerClient builds a configured zap logger.
//
// The logger writes JSON to stderr with ISO8601 timestamps, capital level
// names, caller information, and pid/service as initial fields. If zap
// construction fails the process exits: running without a logger is not a
// state the application supports.
func NewLoggerClient(cfg Config) *LoggerClient {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(logLevel),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := zapCfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{Zap: zl}
}

// Debug logs at debug level with optional error and fields.
func (l *LoggerClient) Debug(msg string, err error, fields map[string]interface{}) {
	l.Zap.Debug(msg, buildFields(err, fields)...)
}

// Info logs at info level with optional error and fields.
func (l *LoggerClient) Info(msg string, err error, fields map[string]interface{}) {
	l.Zap.Info(msg, buildFields(err, fields)...)
}

// Warn logs at warn level with optional error and fields.
func (l *LoggerClient) Warn(msg string, err error, fields map[string]interface{}) {
	l.Zap.Warn(msg, buildFields(err, fields)...)
}

// Error logs at error level with optional error and fields.
func (l *LoggerClient) Error(msg string, err error, fields map[string]interface{}) {
	l.Zap.Error(msg, buildFields(err, fields)...)
}

// buildFields converts the optional error and field map into zap fields.
func buildFields(err error, fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

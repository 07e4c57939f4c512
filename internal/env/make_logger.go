package env

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// MakeLogger builds a JSON logger at the configured level. With a log file
// set, output goes to a rotated file instead of stderr.
func MakeLogger(config *Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", config.LogLevel, ErrInvalidConfig)
	}

	if config.LogFile == "" {
		logConfig := zap.NewProductionConfig()
		logConfig.Level = zap.NewAtomicLevelAt(level)
		logConfig.Encoding = "json"

		return logConfig.Build()
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	})

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		writer,
		level,
	)

	return zap.New(core, zap.AddCaller()), nil
}

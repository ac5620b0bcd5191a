package logger

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG_LEVEL int = iota - 1
	INFO_LEVEL
	WARN_LEVEL
	ERROR_LEVEL
)

func New() (*zap.Logger, error) {
	viper.SetDefault("LOG_LEVEL", INFO_LEVEL)
	viper.SetDefault("LOG_TIME_FORMAT", time.RFC3339Nano)

	level := viper.GetInt("LOG_LEVEL")
	timeFormat := viper.GetString("LOG_TIME_FORMAT")

	if level < DEBUG_LEVEL || level > ERROR_LEVEL {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %d", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(level))
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return log, nil
}

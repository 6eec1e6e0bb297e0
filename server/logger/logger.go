package logger

import (
	"log"
	"os"

	"github.com/Daskott/raksha/shared"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DEFAULT_MAX_SIZE_MB  = 50
	DEFAULT_MAX_BACKUPS  = 5
	DEFAULT_MAX_AGE_DAYS = 28
)

// NewLogger returns a development logger writing to stdout
func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}

// New builds a logger from config. Console output is always kept, and when
// 'File' is set, a JSON copy of every entry is written to a rotated log file.
func New(cfg shared.LoggingConfig) *zap.SugaredLogger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	if cfg.Production {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level)

	if cfg.File != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotatedFile(cfg)),
			level,
		)
		core = zapcore.NewTee(core, fileCore)
	}

	return zap.New(core, zap.AddCaller()).Sugar()
}

func rotatedFile(cfg shared.LoggingConfig) *lumberjack.Logger {
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	if file.MaxSize <= 0 {
		file.MaxSize = DEFAULT_MAX_SIZE_MB
	}
	if file.MaxBackups <= 0 {
		file.MaxBackups = DEFAULT_MAX_BACKUPS
	}
	if file.MaxAge <= 0 {
		file.MaxAge = DEFAULT_MAX_AGE_DAYS
	}

	return file
}

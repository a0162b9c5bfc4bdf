package runlog

import (
	"os"

	"github.com/site-tools/node-deploy/pkg/errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes the deployment log sink
type Config struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`  // log file path, empty disables the file sink
}

const DefaultLogFile = "deployment.log"

func DefaultConfig() Config {
	return Config{
		Level: "info",
		File:  DefaultLogFile,
	}
}

// Logger is a zap-backed sink that writes timestamped lines to stdout and,
// when configured, to a log file. It hides zap types from the pipeline code.
type Logger struct {
	sugar   *zap.SugaredLogger
	logFile *os.File
}

// NewLogger creates the deployment log sink. Close must be called to flush
// buffered entries and release the log file.
func NewLogger(config Config) (*Logger, error) {
	level, err := getLevelFromString(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	syncers := []zapcore.WriteSyncer{zapcore.Lock(zapcore.AddSync(os.Stdout))}

	var logFile *os.File
	if config.File != "" {
		logFile, err = os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.NewIOError("failed to open log file", err).WithContext("file", config.File)
		}
		syncers = append(syncers, zapcore.AddSync(logFile))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)
	logger := zap.New(core)

	return &Logger{
		sugar:   logger.Sugar(),
		logFile: logFile,
	}, nil
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Close flushes buffered log entries and closes the log file if one is open
func (l *Logger) Close() {
	_ = l.sugar.Sync()
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
}

// In zap v1.27.0 this is zapcore.ParseLevel
func getLevelFromString(levelStr string) (zapcore.Level, error) {
	switch levelStr {
	case "debug":
		return zap.DebugLevel, nil
	case "info", "":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return -1, errors.NewValidationError("invalid log level: "+levelStr, nil)
	}
}

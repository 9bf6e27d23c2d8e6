package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	pathutils "github.com/temirov/clawgit/internal/utils/path"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	logFileMaximumSizeMegabytesConstant  = 1
	logFileMaximumBackupsConstant        = 2
	logFileMaximumAgeDaysConstant        = 30
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncoderMapping = map[LogFormat]func(zapcore.EncoderConfig) zapcore.Encoder{
	LogFormatStructured: zapcore.NewJSONEncoder,
	LogFormatConsole:    zapcore.NewConsoleEncoder,
}

// LoggerOptions selects the level, encoding, and destination of the diagnostic logger.
// An empty FilePath keeps logs on standard error.
type LoggerOptions struct {
	Level    LogLevel
	Format   LogFormat
	FilePath string
}

// LoggerOutputs bundles the loggers produced by LoggerFactory.
type LoggerOutputs struct {
	DiagnosticLogger *zap.Logger
	// LogFilePath is the resolved rotating log file, empty when logging to standard error.
	LogFilePath string
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	homeExpander *pathutils.HomeExpander
	errorSink    zapcore.WriteSyncer
}

// NewLoggerFactory constructs a factory that writes diagnostics to standard error.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{
		homeExpander: pathutils.NewHomeExpander(),
		errorSink:    zapcore.Lock(os.Stderr),
	}
}

// NewLoggerFactoryWithErrorSink constructs a factory that writes diagnostics to the supplied writer
// instead of standard error.
func NewLoggerFactoryWithErrorSink(errorSink io.Writer) *LoggerFactory {
	factory := NewLoggerFactory()
	if errorSink != nil {
		factory.errorSink = zapcore.AddSync(errorSink)
	}
	return factory
}

// CreateLoggerOutputs produces the diagnostic logger for the requested options.
func (factory *LoggerFactory) CreateLoggerOutputs(options LoggerOptions) (LoggerOutputs, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(strings.ToLower(strings.TrimSpace(string(options.Level))))]
	if !levelExists {
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogLevelTemplateConstant, options.Level)
	}

	encoderConstructor, formatExists := logFormatEncoderMapping[LogFormat(strings.ToLower(strings.TrimSpace(string(options.Format))))]
	if !formatExists {
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, options.Format)
	}

	destination := factory.errorSink
	resolvedLogFilePath := factory.homeExpander.Expand(strings.TrimSpace(options.FilePath))
	if len(resolvedLogFilePath) > 0 {
		destination = zapcore.AddSync(&lumberjack.Logger{
			Filename:   resolvedLogFilePath,
			MaxSize:    logFileMaximumSizeMegabytesConstant,
			MaxBackups: logFileMaximumBackupsConstant,
			MaxAge:     logFileMaximumAgeDaysConstant,
		})
	}

	encoderConfiguration := zap.NewProductionEncoderConfig()
	encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(encoderConstructor(encoderConfiguration), destination, zap.NewAtomicLevelAt(zapLogLevel))
	logger := zap.New(core, zap.AddCaller(), zap.ErrorOutput(factory.errorSink))

	return LoggerOutputs{DiagnosticLogger: logger, LogFilePath: resolvedLogFilePath}, nil
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	outputs, creationError := factory.CreateLoggerOutputs(LoggerOptions{Level: requestedLogLevel, Format: requestedLogFormat})
	if creationError != nil {
		return nil, creationError
	}
	return outputs.DiagnosticLogger, nil
}

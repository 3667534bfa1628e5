// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/blssim/blssim/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity levels beyond the ones slog defines.
const (
	LevelTrace = slog.Level(-8)
	LevelOff   = slog.Level(12)
)

var (
	defaultLoggerFactory *loggerFactory
	defaultLogger        *slog.Logger
)

type loggerFactory struct {
	// If nil, log to stderr. Otherwise, log to this file.
	file            io.WriteCloser
	format          string
	level           string
	logRotateConfig cfg.LogRotateLoggingConfig
}

// init initializes the logger factory to use stderr in text format.
func init() {
	defaultLoggerFactory = &loggerFactory{
		file:   nil,
		format: string(cfg.TextLogFormat),
		level:  cfg.INFO,
	}
	defaultLogger = defaultLoggerFactory.newLogger(cfg.INFO)
}

// InitLogFile initializes the logger factory from the logging config. When a
// file path is configured, logs go to that file and it is rotated according
// to the log-rotate config; otherwise logs go to stderr.
func InitLogFile(newLogConfig cfg.LoggingConfig) error {
	var f io.WriteCloser
	if newLogConfig.FilePath != "" {
		filename := string(newLogConfig.FilePath)
		// Fail early when the file can't be created. lumberjack only opens the
		// file on the first write.
		probe, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("error while opening log file: %w", err)
		}
		probe.Close()
		f = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    newLogConfig.LogRotate.MaxFileSizeMb,
			MaxBackups: newLogConfig.LogRotate.BackupFileCount,
			Compress:   newLogConfig.LogRotate.Compress,
		}
	}

	level := string(newLogConfig.Severity)
	if level == "" {
		level = cfg.INFO
	}
	format := string(newLogConfig.Format)
	if format == "" {
		format = string(cfg.TextLogFormat)
	}

	defaultLoggerFactory = &loggerFactory{
		file:            f,
		format:          format,
		level:           level,
		logRotateConfig: newLogConfig.LogRotate,
	}
	defaultLogger = defaultLoggerFactory.newLogger(level)

	return nil
}

// Close closes the log file when necessary and falls back to stderr.
func Close() {
	if f := defaultLoggerFactory.file; f != nil {
		f.Close()
		defaultLoggerFactory.file = nil
		defaultLogger = defaultLoggerFactory.newLogger(defaultLoggerFactory.level)
	}
}

// Tracef prints the message with TRACE severity in the specified format.
func Tracef(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

// Debugf prints the message with DEBUG severity in the specified format.
func Debugf(format string, v ...interface{}) {
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Infof prints the message with INFO severity in the specified format.
func Infof(format string, v ...interface{}) {
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Info prints the message with INFO severity.
func Info(message string, args ...any) {
	defaultLogger.Info(message, args...)
}

// Warnf prints the message with WARNING severity in the specified format.
func Warnf(format string, v ...interface{}) {
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}

// Errorf prints the message with ERROR severity in the specified format.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Error prints the message with ERROR severity.
func Error(msg string) {
	defaultLogger.Error(msg)
}

func (f *loggerFactory) newLogger(level string) *slog.Logger {
	// create a new logger
	var programLevel = new(slog.LevelVar)
	logger := slog.New(f.handler(programLevel, ""))
	setLoggingLevel(level, programLevel)
	return logger
}

func (f *loggerFactory) writer() io.Writer {
	if f.file != nil {
		return f.file
	}
	return os.Stderr
}

func (f *loggerFactory) handler(levelVar *slog.LevelVar, prefix string) slog.Handler {
	return f.createJsonOrTextHandler(f.writer(), levelVar, prefix)
}

func (f *loggerFactory) createJsonOrTextHandler(writer io.Writer, levelVar *slog.LevelVar, prefix string) slog.Handler {
	if strings.EqualFold(f.format, string(cfg.JSONLogFormat)) {
		return slog.NewJSONHandler(writer, getHandlerOptions(levelVar, prefix, true))
	}
	return slog.NewTextHandler(writer, getHandlerOptions(levelVar, prefix, false))
}

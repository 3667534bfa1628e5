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
	"log/slog"

	"github.com/blssim/blssim/cfg"
)

const (
	timestampKey   = "timestamp"
	severityKey    = "severity"
	messageKey     = "message"
	textTimeLayout = "02/01/2006 03:04:05.000000"
)

func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	switch level {
	// logs having severity >= the configured value will be logged.
	case cfg.TRACE:
		// Setting severity to -8, so that all the other levels are logged.
		programLevel.Set(LevelTrace)
	case cfg.DEBUG:
		programLevel.Set(slog.LevelDebug)
	case cfg.INFO:
		programLevel.Set(slog.LevelInfo)
	case cfg.WARNING:
		programLevel.Set(slog.LevelWarn)
	case cfg.ERROR:
		programLevel.Set(slog.LevelError)
	case cfg.OFF:
		// Setting severity to 12, so that nothing is logged.
		programLevel.Set(LevelOff)
	}
}

func severityName(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return cfg.TRACE
	case level < slog.LevelInfo:
		return cfg.DEBUG
	case level < slog.LevelWarn:
		return cfg.INFO
	case level < slog.LevelError:
		return cfg.WARNING
	default:
		return cfg.ERROR
	}
}

// getHandlerOptions renames the built-in slog keys to time/timestamp,
// severity and message, and prepends prefix to every message.
func getHandlerOptions(levelVar *slog.LevelVar, prefix string, jsonFormat bool) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				t := a.Value.Time()
				if jsonFormat {
					return slog.Group(timestampKey,
						slog.Int64("seconds", t.Unix()),
						slog.Int("nanos", t.Nanosecond()))
				}
				return slog.String(slog.TimeKey, t.Format(textTimeLayout))
			case slog.LevelKey:
				level, _ := a.Value.Any().(slog.Level)
				return slog.String(severityKey, severityName(level))
			case slog.MessageKey:
				return slog.String(messageKey, prefix+a.Value.String())
			}
			return a
		},
	}
}

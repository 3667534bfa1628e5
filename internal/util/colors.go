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

package util

import (
	"os"
	"strings"
)

// ANSI color codes for terminal output.
const (
	ColorReset = "\033[0m"

	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
)

// ColorSupported checks if the terminal supports colors. NO_COLOR always
// disables them.
func ColorSupported() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}

	colorTerms := []string{"xterm", "screen", "tmux", "color", "ansi", "linux"}
	for _, colorTerm := range colorTerms {
		if strings.Contains(strings.ToLower(term), colorTerm) {
			return true
		}
	}

	return os.Getenv("COLORTERM") != ""
}

// Colorize wraps text with color codes if colors are supported.
func Colorize(text, color string) string {
	if !ColorSupported() {
		return text
	}
	return color + text + ColorReset
}

func Success(text string) string { return Colorize(text, ColorGreen) }
func Failure(text string) string { return Colorize(text, ColorRed) }
func Warning(text string) string { return Colorize(text, ColorYellow) }
func Info(text string) string    { return Colorize(text, ColorCyan) }
func Notice(text string) string  { return Colorize(text, ColorMagenta) }

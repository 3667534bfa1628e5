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
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blssim/blssim/clock"
)

const (
	defaultProgressSteps = 30
	progressBarWidth     = 30
)

// Progress draws a single-line console progress bar:
//
//	prefix [=========.....................] 30%
type Progress struct {
	out   io.Writer
	clock clock.Clock
	steps int
}

// NewProgress returns a bar writing to out. A nil out discards output.
func NewProgress(out io.Writer, c clock.Clock) *Progress {
	if out == nil {
		out = io.Discard
	}
	return &Progress{out: out, clock: c, steps: defaultProgressSteps}
}

// Run fills the bar over d, redrawing it in place at every step, and ends
// the line. It returns early with ctx.Err() when ctx ends.
func (p *Progress) Run(ctx context.Context, prefix string, d time.Duration) error {
	step := d / time.Duration(p.steps)
	for i := 0; i <= p.steps; i++ {
		fmt.Fprintf(p.out, "\r%s", Warning(p.line(prefix, i)))
		if i == p.steps || step <= 0 {
			continue
		}
		select {
		case <-p.clock.After(step):
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return ctx.Err()
		}
	}
	fmt.Fprintln(p.out)
	return nil
}

func (p *Progress) line(prefix string, i int) string {
	filled := i * progressBarWidth / p.steps
	bar := strings.Repeat("=", filled) + strings.Repeat(".", progressBarWidth-filled)
	return fmt.Sprintf("%s [%s] %d%%", prefix, bar, i*100/p.steps)
}

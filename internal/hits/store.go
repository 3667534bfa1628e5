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

// Package hits persists hit lines to an append-only flat file.
package hits

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/blssim/blssim/internal/logger"
)

// Store appends lines to a file. Prior content is never rewritten.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Append writes each line followed by a newline at the end of the file,
// creating it when needed. Appending no lines leaves the filesystem
// untouched.
func (s *Store) Append(lines ...string) (err error) {
	if len(lines) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening hits file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err = w.WriteString(l + "\n"); err != nil {
			return fmt.Errorf("appending to hits file: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("appending to hits file: %w", err)
	}
	logger.Debugf("Appended %d lines to %s", len(lines), s.path)
	return nil
}

// BookedLine is the hits file entry for a successful simulated booking.
func BookedLine(appointmentID, flatRecord string) string {
	return fmt.Sprintf("BOOKED_SIM|%s|%s", appointmentID, flatRecord)
}

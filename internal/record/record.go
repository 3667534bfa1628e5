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

// Package record holds the record model and its flat-file line format:
//
//	identifier|MM/YYYY|reference|$balance
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSeparator = "|"
	currencyMarker = "$"
	fieldCount     = 4
)

// ErrMalformedLine is returned for a line that can't be turned into a Record.
var ErrMalformedLine = errors.New("malformed record line")

// Expiry is a month/year pair.
type Expiry struct {
	Month int
	Year  int
}

func (e Expiry) String() string {
	return fmt.Sprintf("%02d/%d", e.Month, e.Year)
}

// ParseExpiry parses the MM/YYYY form produced by Expiry.String.
func ParseExpiry(s string) (Expiry, error) {
	month, year, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Expiry{}, fmt.Errorf("expiry %q: missing '/'", s)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return Expiry{}, fmt.Errorf("expiry %q: %w", s, err)
	}
	if m < 1 || m > 12 {
		return Expiry{}, fmt.Errorf("expiry %q: month out of range", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Expiry{}, fmt.Errorf("expiry %q: %w", s, err)
	}
	return Expiry{Month: m, Year: y}, nil
}

// Record is one synthetic identifier item. Records are passed by value and
// never modified after construction, so workers may share them freely.
type Record struct {
	Identifier string
	Expiry     Expiry
	Reference  string
	Balance    int

	// CreatedAt is the generation time. Records parsed from a list carry the
	// zero time since the flat format doesn't persist it.
	CreatedAt time.Time
}

// String returns the flat line form of the record.
func (r Record) String() string {
	return fmt.Sprintf("%s|%s|%s|$%d", r.Identifier, r.Expiry, r.Reference, r.Balance)
}

// ParseLine reconstructs a Record from its flat line form. Fields past the
// fourth are ignored.
func ParseLine(line string) (Record, error) {
	parts := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(parts) < fieldCount {
		return Record{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedLine, fieldCount, len(parts))
	}

	expiry, err := ParseExpiry(parts[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}

	balanceField := strings.TrimPrefix(strings.TrimSpace(parts[3]), currencyMarker)
	balance, err := strconv.Atoi(balanceField)
	if err != nil {
		return Record{}, fmt.Errorf("%w: balance %q: %w", ErrMalformedLine, parts[3], err)
	}

	return Record{
		Identifier: strings.TrimSpace(parts[0]),
		Expiry:     expiry,
		Reference:  strings.TrimSpace(parts[2]),
		Balance:    balance,
	}, nil
}

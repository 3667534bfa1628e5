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

// Package generator produces random synthetic records and persists them as a
// flat list.
package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/blssim/blssim/internal/logger"
	"github.com/blssim/blssim/internal/record"
	"github.com/jacobsa/timeutil"
)

const (
	IdentifierLength = 16
	ReferenceLength  = 3
)

// BalanceTiers is the discrete set balances are drawn from.
var BalanceTiers = []int{0, 10, 25, 69, 120, 180, 280}

type Generator struct {
	rand        *rand.Rand
	clock       timeutil.Clock
	expiryYears int
	listPath    string
}

// NewGenerator returns a generator writing to listPath. Expiry years are drawn
// from a window of expiryYears years; values below 1 are treated as 1.
func NewGenerator(rng *rand.Rand, clock timeutil.Clock, expiryYears int, listPath string) *Generator {
	return &Generator{
		rand:        rng,
		clock:       clock,
		expiryYears: max(1, expiryYears),
		listPath:    listPath,
	}
}

// Generate creates count independent records with expiries starting at
// startYear and writes them to the list file, overwriting it. count is
// coerced to at least 1. Identifiers are not guaranteed to be unique.
func (g *Generator) Generate(count, startYear int) ([]record.Record, error) {
	count = max(1, count)
	logger.Infof("Generating %d synthetic records", count)

	recs := make([]record.Record, 0, count)
	for range count {
		recs = append(recs, g.newRecord(startYear))
	}

	if err := record.WriteFile(g.listPath, recs); err != nil {
		return nil, fmt.Errorf("saving generated records: %w", err)
	}
	logger.Infof("Saved generated records to %s", g.listPath)
	return recs, nil
}

func (g *Generator) newRecord(startYear int) record.Record {
	return record.Record{
		Identifier: g.digits(IdentifierLength),
		Expiry: record.Expiry{
			Month: 1 + g.rand.IntN(12),
			Year:  startYear + g.rand.IntN(g.expiryYears),
		},
		Reference: g.digits(ReferenceLength),
		Balance:   BalanceTiers[g.rand.IntN(len(BalanceTiers))],
		CreatedAt: g.clock.Now(),
	}
}

func (g *Generator) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + g.rand.IntN(10))
	}
	return string(b)
}

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

package generator

import (
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/blssim/blssim/internal/record"
	"github.com/jacobsa/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type GeneratorTest struct {
	suite.Suite
	clock    timeutil.SimulatedClock
	listPath string
	gen      *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTest))
}

func (t *GeneratorTest) SetupTest() {
	t.clock.SetTime(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	t.listPath = filepath.Join(t.T().TempDir(), "list.txt")
	t.gen = NewGenerator(rand.New(rand.NewPCG(1, 2)), &t.clock, 6, t.listPath)
}

func (t *GeneratorTest) TestGenerate_FieldShapes() {
	recs, err := t.gen.Generate(200, 2025)

	require.NoError(t.T(), err)
	require.Len(t.T(), recs, 200)
	for _, r := range recs {
		assert.Len(t.T(), r.Identifier, IdentifierLength)
		assert.Regexp(t.T(), "^[0-9]+$", r.Identifier)
		assert.Len(t.T(), r.Reference, ReferenceLength)
		assert.Regexp(t.T(), "^[0-9]+$", r.Reference)
		assert.GreaterOrEqual(t.T(), r.Expiry.Month, 1)
		assert.LessOrEqual(t.T(), r.Expiry.Month, 12)
		assert.GreaterOrEqual(t.T(), r.Expiry.Year, 2025)
		assert.LessOrEqual(t.T(), r.Expiry.Year, 2030)
		assert.Contains(t.T(), BalanceTiers, r.Balance)
		assert.Equal(t.T(), t.clock.Now(), r.CreatedAt)
	}
}

func (t *GeneratorTest) TestGenerate_CoercesCountToAtLeastOne() {
	for _, count := range []int{0, -5} {
		recs, err := t.gen.Generate(count, 2025)

		require.NoError(t.T(), err)
		assert.Len(t.T(), recs, 1)
	}
}

func (t *GeneratorTest) TestGenerate_WritesParsableList() {
	recs, err := t.gen.Generate(25, 2031)
	require.NoError(t.T(), err)

	loaded, err := record.ReadFile(t.listPath)

	require.NoError(t.T(), err)
	require.Len(t.T(), loaded, len(recs))
	for i := range recs {
		assert.Equal(t.T(), recs[i].String(), loaded[i].String())
	}
}

func (t *GeneratorTest) TestGenerate_OverwritesList() {
	_, err := t.gen.Generate(10, 2025)
	require.NoError(t.T(), err)

	_, err = t.gen.Generate(3, 2025)
	require.NoError(t.T(), err)

	loaded, err := record.ReadFile(t.listPath)
	require.NoError(t.T(), err)
	assert.Len(t.T(), loaded, 3)
}

func (t *GeneratorTest) TestGenerate_CreatedAtFollowsClock() {
	first, err := t.gen.Generate(1, 2025)
	require.NoError(t.T(), err)
	t.clock.AdvanceTime(time.Hour)

	second, err := t.gen.Generate(1, 2025)

	require.NoError(t.T(), err)
	assert.Equal(t.T(), time.Hour, second[0].CreatedAt.Sub(first[0].CreatedAt))
}

func (t *GeneratorTest) TestGenerate_SameSeedSameRecords() {
	other := NewGenerator(rand.New(rand.NewPCG(1, 2)), &t.clock, 6, filepath.Join(t.T().TempDir(), "other.txt"))

	a, err := t.gen.Generate(5, 2025)
	require.NoError(t.T(), err)
	b, err := other.Generate(5, 2025)
	require.NoError(t.T(), err)

	assert.Equal(t.T(), a, b)
}

func (t *GeneratorTest) TestGenerate_UnwritableListFails() {
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)), &t.clock, 6, filepath.Join(t.T().TempDir(), "missing", "list.txt"))

	_, err := gen.Generate(1, 2025)

	assert.Error(t.T(), err)
}

func TestNewGenerator_ClampsExpiryYears(t *testing.T) {
	var clock timeutil.SimulatedClock
	gen := NewGenerator(rand.New(rand.NewPCG(3, 4)), &clock, 0, filepath.Join(t.TempDir(), "l.txt"))

	recs, err := gen.Generate(20, 2040)

	require.NoError(t, err)
	for _, r := range recs {
		assert.Equal(t, 2040, r.Expiry.Year)
	}
}

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

package hits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.txt")
	s := NewStore(path)

	require.NoError(t, s.Append("HIT: a|01/2025|001|$120", "HIT: b|02/2026|002|$180"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "HIT: a|01/2025|001|$120\nHIT: b|02/2026|002|$180\n", string(content))
}

func TestAppend_KeepsPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.txt")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))
	s := NewStore(path)

	require.NoError(t, s.Append("first"))
	require.NoError(t, s.Append("second"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\nfirst\nsecond\n", string(content))
}

func TestAppend_NothingToWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.txt")
	s := NewStore(path)

	require.NoError(t, s.Append())

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAppend_UnwritablePath(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing", "hits.txt"))

	assert.Error(t, s.Append("line"))
}

func TestBookedLine(t *testing.T) {
	assert.Equal(t, "BOOKED_SIM|SIM-12345678|1111|01/2025|001|$120", BookedLine("SIM-12345678", "1111|01/2025|001|$120"))
}

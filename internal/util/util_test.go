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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type UtilTest struct {
	suite.Suite
}

func TestUtilSuite(t *testing.T) {
	suite.Run(t, new(UtilTest))
}

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (ts *UtilTest) TestResolveFilePathStartsWithTilda() {
	resolvedPath, err := GetResolvedPath("~/test.txt")

	assert.Equal(ts.T(), nil, err)
	homeDir, err := os.UserHomeDir()
	assert.Equal(ts.T(), nil, err)
	assert.Equal(ts.T(), filepath.Join(homeDir, "test.txt"), resolvedPath)
}

func (ts *UtilTest) TestResolveFilePathStartsWithDot() {
	resolvedPath, err := GetResolvedPath("./test.txt")

	assert.Equal(ts.T(), nil, err)
	currentWorkingDir, err := os.Getwd()
	assert.Equal(ts.T(), nil, err)
	assert.Equal(ts.T(), filepath.Join(currentWorkingDir, "test.txt"), resolvedPath)
}

func (ts *UtilTest) TestResolveEmptyAndAbsolutePath() {
	for _, input := range []string{"", "/var/dir/test.txt"} {
		resolvedPath, err := GetResolvedPath(input)

		assert.Equal(ts.T(), nil, err)
		assert.Equal(ts.T(), input, resolvedPath)
	}
}

func (ts *UtilTest) TestFileExists() {
	dir := ts.T().TempDir()
	filePath := filepath.Join(dir, "present.txt")
	assert.NoError(ts.T(), os.WriteFile(filePath, []byte("x"), 0644))

	assert.True(ts.T(), FileExists(filePath))
	assert.False(ts.T(), FileExists(filepath.Join(dir, "absent.txt")))
	assert.False(ts.T(), FileExists(dir))
}

func (ts *UtilTest) TestColorizeHonoursNoColor() {
	ts.T().Setenv("NO_COLOR", "1")
	ts.T().Setenv("TERM", "xterm-256color")

	assert.Equal(ts.T(), "plain", Success("plain"))
}

func (ts *UtilTest) TestColorizeWrapsWhenSupported() {
	ts.T().Setenv("TERM", "xterm-256color")
	ts.T().Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	assert.Equal(ts.T(), ColorRed+"oops"+ColorReset, Failure("oops"))
}

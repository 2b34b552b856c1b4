// seehuhn.de/go/segnet - segment network preparation for network analysis
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/segnet"
)

var envKeys = []string{
	"SEGNET_CONFIG",
	"SEGNET_ADDR",
	"SEGNET_CACHE",
	"SEGNET_TOLERANCE",
	"SEGNET_MERGE_COLLINEAR",
	"SEGNET_BUILD_INDICES",
	"SEGNET_BAKE_LAYER",
	"SEGNET_LOG_LEVEL",
}

// clearEnv unsets all SEGNET_ variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))
	return fname
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.NoError(t, c.Validate())

	opts := c.Options()
	assert.Equal(t, segnet.DefaultTolerance, opts.Tolerance)
	assert.True(t, opts.BuildIndices)
	assert.False(t, opts.MergeCollinear)
}

func TestPrecedence(t *testing.T) {
	clearEnv(t)
	yamlFile := writeFile(t, "segnet.yaml", `
addr: ":9000"
tolerance: 0.5
merge_collinear: true
bake_layer: from-yaml
`)
	envFile := writeFile(t, "test.env", "SEGNET_BAKE_LAYER=from-dotenv\nSEGNET_BUILD_INDICES=false\n")
	t.Setenv("SEGNET_TOLERANCE", "0.25")

	c, err := Load(yamlFile, envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 0.25, c.Tolerance)
	assert.True(t, c.MergeCollinear)
	assert.False(t, c.BuildIndices)
	assert.Equal(t, "from-dotenv", c.BakeLayer)

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(set)
	require.NoError(t, set.Parse([]string{"-tol", "2", "-layer", "from-flag"}))
	assert.Equal(t, 2.0, c.Tolerance)
	assert.Equal(t, "from-flag", c.BakeLayer)
	assert.True(t, c.MergeCollinear)
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	yamlFile := writeFile(t, "c.yaml", "cache: other.db\n")
	t.Setenv("SEGNET_CONFIG", yamlFile)

	c, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "other.db", c.CachePath)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	noEnv := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "tolerance: [1"), noEnv)
	assert.Error(t, err)

	t.Setenv("SEGNET_TOLERANCE", "small")
	_, err = Load("", noEnv)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Tolerance = -1
	assert.ErrorIs(t, c.Validate(), segnet.ErrInvalidTolerance)

	c = Default()
	c.LogLevel = "loud"
	assert.Error(t, c.Validate())
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"
	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	logger := c.NewLogger(os.Stderr)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

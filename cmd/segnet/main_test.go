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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/segnet"
)

const square = `{"curves": [
  {"type": "polyline", "points": [[0, 0], [4, 0], [4, 4], [0, 4], [0, 0]]},
  {"type": "line", "from": [4, 0], "to": [0, 0]}
]}`

func runCLI(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("SEGNET_CONFIG", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := run(context.Background(), args, strings.NewReader(input), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestPrepare(t *testing.T) {
	out, errOut, err := runCLI(t, square, "-log", "error", "prepare")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Duplicates removed=1")

	g := &segnet.GraphInput{}
	require.NoError(t, json.Unmarshal([]byte(out), g))
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, 4, g.NumPoints())
}

func TestPrepareFlatFromFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "square.json")
	require.NoError(t, os.WriteFile(fname, []byte(square), 0o644))

	out, _, err := runCLI(t, "", "-indexed=false", "prepare", fname)
	require.NoError(t, err)

	g := &segnet.GraphInput{}
	require.NoError(t, json.Unmarshal([]byte(out), g))
	assert.False(t, g.Indexed())
	assert.Equal(t, 4, g.NumEdges())
}

func TestPreview(t *testing.T) {
	out, _, err := runCLI(t, square, "-width", "40", "-height", "30", "preview")
	require.NoError(t, err)
	img, err := png.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestBake(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "square.pdf")
	_, errOut, err := runCLI(t, square, "-layer", "walls", "-o", fname, "bake")
	require.NoError(t, err)
	assert.Contains(t, errOut, `baked 4 edges to layer "walls"`)
	_, err = os.Stat(fname)
	assert.NoError(t, err)
}

func TestCache(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cache.db")
	t.Setenv("SEGNET_CACHE", db)

	out1, _, err := runCLI(t, square, "-cache", "prepare")
	require.NoError(t, err)
	g := &segnet.GraphInput{}
	require.NoError(t, json.Unmarshal([]byte(out1), g))

	_, errOut, err := runCLI(t, square, "-cache", "-previous", g.Hash(), "prepare")
	require.NoError(t, err)
	assert.Contains(t, errOut, "geometry unchanged")
}

func TestErrors(t *testing.T) {
	_, _, err := runCLI(t, square)
	assert.Error(t, err)

	_, _, err = runCLI(t, square, "explode")
	assert.Error(t, err)

	_, _, err = runCLI(t, `{"curves": []}`, "prepare")
	assert.ErrorIs(t, err, segnet.ErrInputEmpty)

	_, _, err = runCLI(t, square, "-tol", "0", "prepare")
	assert.ErrorIs(t, err, segnet.ErrInvalidTolerance)

	_, _, err = runCLI(t, square, "-layer", "walls", "bake")
	assert.Error(t, err)
}

func TestBakeNeedsLayer(t *testing.T) {
	t.Setenv("SEGNET_BAKE_LAYER", "")
	fname := filepath.Join(t.TempDir(), "square.pdf")

	for _, layer := range []string{"", "  "} {
		_, _, err := runCLI(t, square, "-layer", layer, "-o", fname, "bake")
		assert.ErrorContains(t, err, "layer")
		_, err = os.Stat(fname)
		assert.True(t, os.IsNotExist(err), "layer %q", layer)
	}

	withLayer := `{"bakeLayer": "walls", "curves": [{"type": "line", "from": [0, 0], "to": [1, 0]}]}`
	_, errOut, err := runCLI(t, withLayer, "-o", fname, "bake")
	require.NoError(t, err)
	assert.Contains(t, errOut, `layer "walls"`)
}

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

package segnet_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/segnet"
)

func line(x0, y0, x1, y1 float64) segnet.Line {
	return segnet.Line{From: vec.Vec2{X: x0, Y: y0}, To: vec.Vec2{X: x1, Y: y1}}
}

func opts(tol float64, indexed, merge bool) *segnet.Options {
	return &segnet.Options{Tolerance: tol, BuildIndices: indexed, MergeCollinear: merge}
}

func TestScenarioLShape(t *testing.T) {
	curves := []segnet.Curve{line(0, 0, 10, 0), line(10, 0, 10, 10)}
	g, rep, err := segnet.Prepare(context.Background(), curves, opts(0.01, true, false))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 10, 0, 10, 10}, g.Coords())
	assert.Equal(t, []uint32{0, 1, 1, 2}, g.Indices())
	assert.Equal(t, rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}, g.BBox())
	assert.Equal(t, 2, rep.FinalEdges)
	assert.Equal(t, 3, rep.Nodes)
	assert.Equal(t, segnet.StageAssembled, rep.Final)
	assert.Equal(t, g.BBox(), rep.BBox)
}

func TestScenarioZeroLength(t *testing.T) {
	curves := []segnet.Curve{line(5, 5, 5, 5)}
	g, rep, err := segnet.Prepare(context.Background(), curves, opts(0.01, true, false))
	assert.ErrorIs(t, err, segnet.ErrInputEmpty)
	assert.Nil(t, g)
	require.NotNil(t, rep)
	assert.Equal(t, 1, rep.Degenerate)
	assert.Equal(t, segnet.StageFailed, rep.Final)
}

func TestScenarioOverlap(t *testing.T) {
	orders := [][]segnet.Curve{
		{line(0, 0, 10, 0), line(10, 0, 0, 0), line(0.001, 0, 10, 0.002)},
		{line(10, 0, 0, 0), line(0.001, 0, 10, 0.002), line(0, 0, 10, 0)},
		{line(0.001, 0, 10, 0.002), line(0, 0, 10, 0), line(10, 0, 0, 0)},
	}
	for _, curves := range orders {
		for _, indexed := range []bool{true, false} {
			g, rep, err := segnet.Prepare(context.Background(), curves, opts(0.01, indexed, false))
			require.NoError(t, err)
			assert.Equal(t, 1, g.NumEdges())
			assert.Equal(t, 2, rep.Duplicates)
		}
	}
}

func TestReversedDuplicate(t *testing.T) {
	curves := []segnet.Curve{line(0, 0, 10, 0), line(10, 0, 0, 0)}
	g, _, err := segnet.Prepare(context.Background(), curves, opts(0.01, false, false))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 10, 0}, g.Coords())
	assert.Nil(t, g.Indices())
}

func TestIdempotence(t *testing.T) {
	curves := []segnet.Curve{
		segnet.Polyline{{X: 0, Y: 0}, {X: 3.14159, Y: 2.71828}, {X: 7, Y: -1}},
		line(7, -1, 0, 0),
		segnet.Freeform{Path: (&path.Data{}).
			MoveTo(vec.Vec2{X: 0, Y: 0}).
			CubeTo(vec.Vec2{X: 1, Y: 5}, vec.Vec2{X: 4, Y: 5}, vec.Vec2{X: 7, Y: -1})},
	}
	for _, indexed := range []bool{true, false} {
		for _, merge := range []bool{true, false} {
			o := opts(0.001, indexed, merge)
			g1, _, err := segnet.Prepare(context.Background(), curves, o)
			require.NoError(t, err)
			g2, _, err := segnet.Prepare(context.Background(), curves, o)
			require.NoError(t, err)

			assert.Equal(t, g1.Coords(), g2.Coords())
			assert.Equal(t, g1.Indices(), g2.Indices())
			assert.Equal(t, g1.Hash(), g2.Hash())
		}
	}
}

func TestFlatAndIndexedAgree(t *testing.T) {
	curves := []segnet.Curve{
		segnet.Polyline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}},
		line(0, 0, 1, 1),
	}
	gi, _, err := segnet.Prepare(context.Background(), curves, opts(0.01, true, false))
	require.NoError(t, err)
	gf, _, err := segnet.Prepare(context.Background(), curves, opts(0.01, false, false))
	require.NoError(t, err)

	var si, sf []segnet.Segment
	for s := range gi.Segments() {
		si = append(si, s)
	}
	for s := range gf.Segments() {
		sf = append(sf, s)
	}
	assert.Equal(t, sf, si)
	assert.Equal(t, gi.BBox(), gf.BBox())
	assert.NotEqual(t, gi.Hash(), gf.Hash())
}

func TestInvalidTolerance(t *testing.T) {
	curves := []segnet.Curve{line(0, 0, 1, 0)}
	for _, tol := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		g, rep, err := segnet.Prepare(context.Background(), curves, opts(tol, true, false))
		assert.ErrorIs(t, err, segnet.ErrInvalidTolerance, "tol=%g", tol)
		assert.Nil(t, g)
		assert.Zero(t, rep.InputCurves, "no curve may be processed")
		assert.Empty(t, rep.Progress)
		assert.Equal(t, segnet.StageFailed, rep.Final)
	}
}

func TestNilOptions(t *testing.T) {
	g, rep, err := segnet.Prepare(context.Background(), []segnet.Curve{line(0, 0, 1, 0)}, nil)
	require.NoError(t, err)
	assert.True(t, g.Indexed())
	assert.Equal(t, segnet.DefaultTolerance, rep.Tolerance)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, rep, err := segnet.Prepare(ctx, []segnet.Curve{line(0, 0, 1, 0)}, nil)
	assert.ErrorIs(t, err, segnet.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, g)
	assert.Equal(t, segnet.StageCancelled, rep.Final)
}

// cancellingDiscretizer cancels the run while the curves are linearized.
type cancellingDiscretizer struct {
	cancel context.CancelFunc
}

func (d cancellingDiscretizer) Discretize(p *path.Data) []segnet.Polyline {
	d.cancel()
	return segnet.DefaultFlattener.Discretize(p)
}

func TestCancelledBetweenCurves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ff := segnet.Freeform{Path: (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 5, Y: 5})}
	curves := []segnet.Curve{ff, line(0, 0, 1, 0), line(2, 0, 3, 0)}
	o := segnet.DefaultOptions()
	o.Discretizer = cancellingDiscretizer{cancel: cancel}

	g, rep, err := segnet.Prepare(ctx, curves, o)
	assert.ErrorIs(t, err, segnet.ErrCancelled)
	assert.Nil(t, g)
	assert.Equal(t, 1, rep.InputCurves)
	assert.Equal(t, segnet.StageCancelled, rep.Final)
}

func TestProgress(t *testing.T) {
	ch := make(chan segnet.Progress, 16)
	o := segnet.DefaultOptions()
	o.MergeCollinear = true
	o.Progress = ch

	_, rep, err := segnet.Prepare(context.Background(), []segnet.Curve{line(0, 0, 1, 0)}, o)
	require.NoError(t, err)
	close(ch)

	var sent []segnet.Progress
	for p := range ch {
		sent = append(sent, p)
	}
	var replayed []segnet.Progress
	for p := range rep.Events() {
		replayed = append(replayed, p)
	}
	assert.Equal(t, replayed, sent)

	stages := make([]segnet.Stage, len(sent))
	for i, p := range sent {
		stages[i] = p.Stage
	}
	assert.Equal(t, []segnet.Stage{
		segnet.StageLinearizing,
		segnet.StageSnapping,
		segnet.StageFiltering,
		segnet.StageDeduplicating,
		segnet.StageMerging,
		segnet.StageIndexing,
		segnet.StageHashing,
		segnet.StageAssembled,
	}, stages)

	last := 0.0
	for _, p := range sent {
		assert.Greater(t, p.Percent, last)
		last = p.Percent
	}
	assert.Equal(t, 100.0, last)
}

func TestProgressNeverBlocks(t *testing.T) {
	o := segnet.DefaultOptions()
	o.Progress = make(chan segnet.Progress) // nobody is listening

	_, rep, err := segnet.Prepare(context.Background(), []segnet.Curve{line(0, 0, 1, 0)}, o)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Progress)
}

func TestFlatModeStages(t *testing.T) {
	o := segnet.DefaultOptions()
	o.BuildIndices = false
	_, rep, err := segnet.Prepare(context.Background(), []segnet.Curve{line(0, 0, 1, 0)}, o)
	require.NoError(t, err)
	for p := range rep.Events() {
		assert.NotEqual(t, segnet.StageIndexing, p.Stage)
		assert.NotEqual(t, segnet.StageMerging, p.Stage)
	}
	assert.Zero(t, rep.Nodes)
}

func TestPreviousHash(t *testing.T) {
	curves := []segnet.Curve{line(0, 0, 1, 0)}
	g, rep, err := segnet.Prepare(context.Background(), curves, nil)
	require.NoError(t, err)
	assert.False(t, rep.Unchanged)

	o := segnet.DefaultOptions()
	o.PreviousHash = g.Hash()
	_, rep, err = segnet.Prepare(context.Background(), curves, o)
	require.NoError(t, err)
	assert.True(t, rep.Unchanged)

	curves = append(curves, line(1, 0, 1, 1))
	_, rep, err = segnet.Prepare(context.Background(), curves, o)
	require.NoError(t, err)
	assert.False(t, rep.Unchanged)
}

func TestSkippedAndUnsnappable(t *testing.T) {
	curves := []segnet.Curve{
		nil,
		segnet.Polyline{{X: 1, Y: 1}},
		line(0, 0, 1e300, 0),
		line(0, 0, 1, 0),
	}
	g, rep, err := segnet.Prepare(context.Background(), curves, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.InputCurves)
	assert.Equal(t, 2, rep.SkippedCurves)
	assert.Equal(t, 2, rep.Segments)
	assert.Equal(t, 1, rep.Unsnappable)
	assert.Equal(t, 1, g.NumEdges())
}

func TestMalformedFreeformSkipped(t *testing.T) {
	bad := segnet.Freeform{Path: &path.Data{
		Cmds:   []path.Command{path.CmdMoveTo, path.CmdCubeTo},
		Coords: []vec.Vec2{{X: 0, Y: 0}},
	}}
	curves := []segnet.Curve{bad, line(0, 0, 1, 0)}

	var g *segnet.GraphInput
	var rep *segnet.Report
	var err error
	require.NotPanics(t, func() {
		g, rep, err = segnet.Prepare(context.Background(), curves, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.SkippedCurves)
	assert.Equal(t, 1, g.NumEdges())
}

func TestReportStrings(t *testing.T) {
	curves := []segnet.Curve{line(0, 0, 10, 0), line(10, 0, 0, 0)}
	_, rep, err := segnet.Prepare(context.Background(), curves, opts(0.01, true, false))
	require.NoError(t, err)

	assert.Contains(t, rep.Info(), "Input curves=2")
	assert.Contains(t, rep.Info(), "Duplicates removed=1")
	assert.Contains(t, rep.Info(), "Final segs=1")
	assert.Contains(t, rep.String(), "BBox=[0.000,0.000] - [10.000,0.000]")

	_, rep, _ = segnet.Prepare(context.Background(), nil, nil)
	assert.Contains(t, rep.String(), "Result=failed")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "deduplicating", segnet.StageDeduplicating.String())
	assert.Equal(t, "Stage(99)", segnet.Stage(99).String())
	assert.True(t, segnet.StageCancelled.Terminal())
	assert.False(t, segnet.StageHashing.Terminal())
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	segnet.SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer segnet.SetLogger(nil)

	_, _, err := segnet.Prepare(context.Background(), []segnet.Curve{line(0, 0, 1, 0)}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stage=hashing")
	assert.Contains(t, buf.String(), "graph input prepared")
}

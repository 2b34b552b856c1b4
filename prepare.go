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

package segnet

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Options control Prepare.
type Options struct {
	// Tolerance is the snapping grid size.  Points closer than this are
	// treated as the same point.  Must be positive and finite.
	Tolerance float64

	// MergeCollinear enables the collinear merge stage.
	MergeCollinear bool

	// BuildIndices selects the indexed output layout.  If false, every
	// edge is written as four coordinates.
	BuildIndices bool

	// BakeLayer is passed through to document collaborators and is not
	// used by Prepare.
	BakeLayer string

	// PreviousHash is the hash of an earlier result, if any.  It only
	// affects Report.Unchanged.
	PreviousHash string

	// Discretizer converts Freeform curves.  Nil means DefaultFlattener.
	Discretizer Discretizer

	// Merger is used when MergeCollinear is set.
	// Nil means DefaultCollinearMerger.
	Merger Merger

	// Progress, if not nil, receives progress events.  Sends never block:
	// events are dropped if the channel is not ready.  The channel is not
	// closed by Prepare.
	Progress chan<- Progress
}

// DefaultOptions returns the default options: tolerance DefaultTolerance,
// indexed output, no collinear merging.
func DefaultOptions() *Options {
	return &Options{
		Tolerance:    DefaultTolerance,
		BuildIndices: true,
	}
}

// Validate checks the options.
func (o *Options) Validate() error {
	return checkTolerance(o.Tolerance)
}

// Prepare turns the curves into a deduplicated network of straight
// edges.  If opts is nil, DefaultOptions is used.
//
// On success the returned GraphInput is complete; on failure it is nil.
// The Report is returned in both cases.  Prepare checks ctx before every
// curve and at every stage transition; if ctx is done, the returned
// error matches both ErrCancelled and the context error.
//
// Prepare has no state beyond the call and may be called concurrently.
func Prepare(ctx context.Context, curves []Curve, opts *Options) (*GraphInput, *Report, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r := &run{
		ctx:  ctx,
		opts: opts,
		log:  Logger(),
		report: &Report{
			Tolerance:      opts.Tolerance,
			BuildIndices:   opts.BuildIndices,
			MergeCollinear: opts.MergeCollinear,
		},
	}

	start := time.Now()
	g, err := r.execute(curves)
	rep := r.report
	rep.Elapsed = time.Since(start)

	switch {
	case err == nil:
		rep.Final = StageAssembled
		rep.BBox = g.BBox()
		rep.Unchanged = g.Unchanged(opts.PreviousHash)
		r.log.Info("segnet: graph input prepared",
			slog.Int("edges", rep.FinalEdges),
			slog.Int("nodes", rep.Nodes),
			slog.String("hash", g.Hash()),
			slog.Duration("elapsed", rep.Elapsed))
	case rep.Final == StageCancelled:
		r.log.Debug("segnet: cancelled", slog.Any("err", err))
	default:
		rep.Final = StageFailed
		r.log.Debug("segnet: failed", slog.Any("err", err))
	}
	return g, rep, err
}

// run holds the state of one Prepare call.
type run struct {
	ctx    context.Context
	opts   *Options
	log    *slog.Logger
	report *Report
	stage  Stage
}

// enter moves to stage s and reports progress.  It returns an error if
// the context is done.
func (r *run) enter(s Stage) error {
	if err := r.checkCancel(); err != nil {
		return err
	}
	r.stage = s
	p := Progress{Stage: s, Percent: stagePercent[s]}
	r.report.Progress = append(r.report.Progress, p)
	if r.opts.Progress != nil {
		select {
		case r.opts.Progress <- p:
		default:
		}
	}
	r.log.Debug("segnet: stage", slog.String("stage", s.String()), slog.Float64("percent", p.Percent))
	return nil
}

func (r *run) checkCancel() error {
	if err := r.ctx.Err(); err != nil {
		r.report.Final = StageCancelled
		return fmt.Errorf("%w during %s: %w", ErrCancelled, r.stage, err)
	}
	return nil
}

func (r *run) execute(curves []Curve) (*GraphInput, error) {
	opts := r.opts
	st := &r.report.Stats

	snapper, err := NewSnapper(opts.Tolerance)
	if err != nil {
		return nil, err
	}

	if err := r.enter(StageLinearizing); err != nil {
		return nil, err
	}
	var segs []Segment
	for _, c := range curves {
		if err := r.checkCancel(); err != nil {
			return nil, err
		}
		st.InputCurves++
		var ok bool
		segs, ok = appendSegments(segs, c, opts.Discretizer)
		if !ok {
			st.SkippedCurves++
		}
	}
	st.Segments = len(segs)

	if err := r.enter(StageSnapping); err != nil {
		return nil, err
	}
	edges := make([]Edge, 0, len(segs))
	for _, s := range segs {
		a, okA := snapper.Snap(s.A)
		b, okB := snapper.Snap(s.B)
		if !okA || !okB {
			st.Unsnappable++
			continue
		}
		edges = append(edges, Edge{A: a, B: b})
	}
	st.MergedPoints = snapper.Merged()

	if err := r.enter(StageFiltering); err != nil {
		return nil, err
	}
	kept := edges[:0]
	for _, e := range edges {
		if snapper.Degenerate(e.A, e.B) {
			st.Degenerate++
			continue
		}
		kept = append(kept, e)
	}
	edges = kept

	if err := r.enter(StageDeduplicating); err != nil {
		return nil, err
	}
	idx := NewDedupIndex(len(edges))
	kept = edges[:0]
	for _, e := range edges {
		if idx.Admit(e) {
			kept = append(kept, e)
		}
	}
	edges = kept
	st.Duplicates = idx.Duplicates()

	if opts.MergeCollinear {
		if err := r.enter(StageMerging); err != nil {
			return nil, err
		}
		m := opts.Merger
		if m == nil {
			m = DefaultCollinearMerger
		}
		edges, st.CollinearMerges = m.Merge(edges, idx)
	}

	if len(edges) == 0 {
		return nil, ErrInputEmpty
	}
	st.FinalEdges = len(edges)

	var bounds Bounds
	var coords []float64
	var indices []uint32
	if opts.BuildIndices {
		if err := r.enter(StageIndexing); err != nil {
			return nil, err
		}
		pool := NewNodePool(len(edges) + 1)
		indices = make([]uint32, 0, 2*len(edges))
		for _, e := range edges {
			indices = append(indices, pool.IndexOf(e.A), pool.IndexOf(e.B))
			bounds.Observe(e.A.Canonical)
			bounds.Observe(e.B.Canonical)
		}
		coords = pool.appendCoords(make([]float64, 0, 2*pool.Len()))
		st.Nodes = pool.Len()
	} else {
		coords = make([]float64, 0, 4*len(edges))
		for _, e := range edges {
			a, b := e.A.Canonical, e.B.Canonical
			coords = append(coords, a.X, a.Y, b.X, b.Y)
			bounds.Observe(a)
			bounds.Observe(b)
		}
	}

	if err := r.enter(StageHashing); err != nil {
		return nil, err
	}
	hash := HashBuffers(coords, indices)
	bbox, _ := bounds.Rect()

	g := &GraphInput{
		coords:  coords,
		indices: indices,
		hash:    hash,
		bbox:    bbox,
	}
	if err := r.enter(StageAssembled); err != nil {
		return nil, err
	}
	return g, nil
}

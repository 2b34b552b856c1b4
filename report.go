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
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"seehuhn.de/go/geom/rect"
)

// Stage is a state of the preparation pipeline.
type Stage int

// The pipeline moves through these stages in order.  Merging and
// Indexing are only entered when the corresponding option is set.
// StageAssembled, StageFailed and StageCancelled are terminal.
const (
	StageIdle Stage = iota
	StageLinearizing
	StageSnapping
	StageFiltering
	StageDeduplicating
	StageMerging
	StageIndexing
	StageHashing
	StageAssembled
	StageFailed
	StageCancelled
)

var stageNames = [...]string{
	StageIdle:          "idle",
	StageLinearizing:   "linearizing",
	StageSnapping:      "snapping",
	StageFiltering:     "filtering",
	StageDeduplicating: "deduplicating",
	StageMerging:       "merging",
	StageIndexing:      "indexing",
	StageHashing:       "hashing",
	StageAssembled:     "assembled",
	StageFailed:        "failed",
	StageCancelled:     "cancelled",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Terminal reports whether no further stage follows s.
func (s Stage) Terminal() bool {
	return s == StageAssembled || s == StageFailed || s == StageCancelled
}

// stagePercent is the progress reported when a stage is entered.
var stagePercent = map[Stage]float64{
	StageLinearizing:   1,
	StageSnapping:      20,
	StageFiltering:     35,
	StageDeduplicating: 45,
	StageMerging:       60,
	StageIndexing:      70,
	StageHashing:       85,
	StageAssembled:     100,
}

// Progress is a progress event.  Percent increases monotonically from 0
// to 100 over a successful run.
type Progress struct {
	Stage   Stage
	Percent float64
}

// Stats holds the informational counters of a pipeline run.
// None of the counted conditions is an error.
type Stats struct {
	InputCurves     int `json:"inputCurves"`     // curves passed in
	SkippedCurves   int `json:"skippedCurves"`   // curves without valid geometry
	Segments        int `json:"segments"`        // segments after linearization
	Unsnappable     int `json:"unsnappable"`     // segments with an endpoint outside the grid range
	Degenerate      int `json:"degenerate"`      // segments no longer than the tolerance after snapping
	Duplicates      int `json:"duplicates"`      // segments equal to an earlier one, in either direction
	MergedPoints    int `json:"mergedPoints"`    // endpoints moved onto a cell first used by another point
	CollinearMerges int `json:"collinearMerges"` // nodes removed by collinear merging
	Nodes           int `json:"nodes"`           // nodes in the output (indexed mode only)
	FinalEdges      int `json:"finalEdges"`      // edges in the output
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Input curves=%d, Skipped=%d, Segs=%d, Zero/degenerate removed=%d, Duplicates removed=%d, Nodes merged~=%d",
		s.InputCurves, s.SkippedCurves, s.Segments, s.Degenerate, s.Duplicates, s.MergedPoints)
	if s.Unsnappable > 0 {
		fmt.Fprintf(&b, ", Out of range=%d", s.Unsnappable)
	}
	if s.CollinearMerges > 0 {
		fmt.Fprintf(&b, ", Collinear merges=%d", s.CollinearMerges)
	}
	if s.Nodes > 0 {
		fmt.Fprintf(&b, ", Nodes=%d", s.Nodes)
	}
	fmt.Fprintf(&b, ", Final segs=%d", s.FinalEdges)
	return b.String()
}

// Report describes a pipeline run.  A report is returned for failed runs
// as well, with the counters reached before the failure.
type Report struct {
	Stats

	Tolerance      float64
	BuildIndices   bool
	MergeCollinear bool

	// BBox is the bounding box of the output.  It is only set if the run
	// succeeded.
	BBox rect.Rect

	// Unchanged is true if the hash of the output equals
	// Options.PreviousHash.
	Unchanged bool

	// Final is the stage the run ended in.
	Final Stage

	Elapsed time.Duration

	// Progress lists all progress events of the run, in order.
	Progress []Progress
}

// Events replays the progress events of the run.
func (r *Report) Events() iter.Seq[Progress] {
	return slices.Values(r.Progress)
}

// Info returns the one-line summary of the run.
func (r *Report) Info() string {
	return fmt.Sprintf("%s, Time=%dms", r.Stats, r.Elapsed.Milliseconds())
}

// String returns the detailed report.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tolerance=%g, BuildIndices=%t, MergeCollinear=%t\n",
		r.Tolerance, r.BuildIndices, r.MergeCollinear)
	if r.Final == StageAssembled {
		fmt.Fprintf(&b, "BBox=[%.3f,%.3f] - [%.3f,%.3f]\n",
			r.BBox.LLx, r.BBox.LLy, r.BBox.URx, r.BBox.URy)
	} else {
		fmt.Fprintf(&b, "Result=%s\n", r.Final)
	}
	b.WriteString(r.Info())
	return b.String()
}

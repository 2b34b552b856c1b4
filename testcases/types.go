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

package testcases

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/segnet"
)

// TestCase defines a single pipeline scenario.
type TestCase struct {
	Name           string         // lowercase a-z, 0-9 and _ only
	Curves         []segnet.Curve // the input geometry
	Tolerance      float64        // snapping grid size (>0)
	MergeCollinear bool
	BuildIndices   bool

	// Want, if not nil, lists the expected outcome.
	Want *Want
}

// Want is the expected outcome of a test case.
type Want struct {
	Err        error // expected error, nil for success
	Edges      int   // edges in the output
	Nodes      int   // nodes in the output, indexed mode only
	Skipped    int   // curves without valid geometry
	Degenerate int   // segments removed as zero-length
	Duplicates int   // segments removed as duplicates
	Merges     int   // nodes removed by collinear merging
}

// Options returns the pipeline options for the test case.
func (tc TestCase) Options() *segnet.Options {
	return &segnet.Options{
		Tolerance:      tc.Tolerance,
		MergeCollinear: tc.MergeCollinear,
		BuildIndices:   tc.BuildIndices,
	}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// line is a helper to create a segnet.Line.
func line(x0, y0, x1, y1 float64) segnet.Line {
	return segnet.Line{From: pt(x0, y0), To: pt(x1, y1)}
}

// polyline builds a segnet.Polyline from interleaved x, y values.
func polyline(xy ...float64) segnet.Polyline {
	pl := make(segnet.Polyline, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pl = append(pl, pt(xy[i], xy[i+1]))
	}
	return pl
}

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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Curve is one piece of user-drawn input geometry.
// The concrete types are Line, Polyline and Freeform.
// Curves are read-only to the pipeline.
type Curve interface {
	isCurve()
}

// Line is a single straight segment.
type Line struct {
	From, To vec.Vec2
}

func (Line) isCurve() {}

// Polyline is an open chain of straight segments through the given vertices.
type Polyline []vec.Vec2

func (Polyline) isCurve() {}

// Freeform is an arbitrary path which may contain quadratic and cubic
// Bézier segments.  Freeform curves are converted to polylines by a
// Discretizer before they enter the pipeline.
type Freeform struct {
	Path *path.Data
}

func (Freeform) isCurve() {}

// Segment is a straight segment between two points, before snapping.
type Segment struct {
	A, B vec.Vec2
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.B.Sub(s.A).Length()
}

func isFinite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

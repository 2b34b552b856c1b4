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

package preview

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened path segment in user space.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A to B
	N    vec.Vec2 // unit normal, T turned 90° counter-clockwise
}

// Stroke computes the coverage of the stroked path p, using Width, Cap,
// Join and MiterLimit.  The outlines of all subpaths are filled together,
// so overlapping strokes are painted once.  The emit callback receives
// the coverage row by row; the slice is only valid during the call.
func (r *Rasterizer) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	// a subpath without length has no direction; only round caps show it
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			start := len(r.stroke)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
			r.strokeOffsets = append(r.strokeOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		start := len(r.stroke)
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i])
		if len(r.stroke)-start >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, start)
		} else {
			r.stroke = r.stroke[:start]
		}
	}

	r.collectStrokeEdges()
	r.fill(emit)
}

// subpathSegments returns the segments of subpath i.
func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenPath splits p into subpaths of straight segments, stored in
// r.segs, r.segsOffsets and r.subpathClosed.  Subpaths which have
// drawing commands but no length go to r.degeneratePoints.  Drawing
// commands before the first MoveTo are ignored.
func (r *Rasterizer) flattenPath(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var current, start vec.Vec2
	startIdx := 0
	inSubpath := false
	drawn := false

	finish := func(closed bool) {
		switch {
		case len(r.segs) > startIdx:
			r.segsOffsets = append(r.segsOffsets, startIdx)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn || closed:
			r.degeneratePoints = append(r.degeneratePoints, start)
		}
		startIdx = len(r.segs)
		drawn = false
	}

	for cmd, pts := range p {
		if cmd != path.CmdMoveTo && cmd != path.CmdClose && !inSubpath {
			continue
		}
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath {
				finish(false)
			}
			current = pts[0]
			start = current
			inSubpath = true

		case path.CmdLineTo:
			drawn = true
			r.addStrokeSegment(current, pts[0])
			current = pts[0]

		case path.CmdQuadTo:
			drawn = true
			r.flattenQuadratic(current, pts[0], pts[1], r.addStrokeSegment)
			current = pts[1]

		case path.CmdCubeTo:
			drawn = true
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addStrokeSegment)
			current = pts[2]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if current != start {
				r.addStrokeSegment(current, start)
			}
			finish(true)
			current = start
			inSubpath = false
		}
	}
	if inSubpath {
		finish(false)
	}
}

// addStrokeSegment appends the segment a-b to r.segs, unless it has no
// length.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeSubpath appends the outline of one subpath to r.stroke, as a
// single polygon: the +N side forwards, then the -N side backwards.  Join
// geometry goes on the outer side of each corner.
func (r *Rasterizer) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		sinClose := cross(last.T, first.T)

		// forward pass, starting at the closing corner
		r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
		for i := range segs {
			seg := &segs[i]
			next := first
			sinTheta := sinClose
			if i < len(segs)-1 {
				next = &segs[i+1]
				sinTheta = cross(seg.T, next.T)
			}
			switch {
			case math.Abs(sinTheta) < collinearityThreshold:
				r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)), next.A.Add(next.N.Mul(d)))
			case sinTheta > 0:
				r.addInnerCorner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
			default:
				r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
				r.addJoin(seg.B, seg.T, next.T, d, true)
				r.stroke = append(r.stroke, next.A.Add(next.N.Mul(d)))
			}
		}

		// backward pass, closing corner first
		switch {
		case math.Abs(sinClose) < collinearityThreshold:
			r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)), last.B.Sub(last.N.Mul(d)))
		case sinClose > 0:
			r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
			r.addJoin(first.A, last.T, first.T, d, false)
			r.stroke = append(r.stroke, last.B.Sub(last.N.Mul(d)))
		default:
			r.addInnerCorner(first.A, last.T, first.T, last.N, first.N, d, false)
		}
		for i := len(segs) - 1; i > 0; i-- {
			seg, prev := &segs[i], &segs[i-1]
			sinTheta := cross(prev.T, seg.T)
			switch {
			case math.Abs(sinTheta) < collinearityThreshold:
				r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
			case sinTheta > 0:
				r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
				r.addJoin(seg.A, prev.T, seg.T, d, false)
				r.stroke = append(r.stroke, prev.B.Sub(prev.N.Mul(d)))
			default:
				r.addInnerCorner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
			}
		}
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		return
	}

	r.addCap(first.A, first.T.Mul(-1), d)

	// forward pass, +N side
	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		sinTheta := cross(seg.T, next.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		case sinTheta > 0:
			skip = r.addInnerCorner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	// backward pass, -N side
	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		sinTheta := cross(prev.T, seg.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		case sinTheta > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			skip = r.addInnerCorner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

// cross returns the z component of the cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// addCap adds a line cap at P.  T points away from the line, d is half
// the stroke width.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// half circle from +N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// innerIntersection returns the point where the two inner offset lines of
// a corner meet.  The result is not ok for nearly collinear segments.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, positiveSide bool) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}
	halfAngle := math.Sqrt((1 + cosTheta) / 2) // cos(θ/2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
	if !positiveSide {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (l * halfAngle))), true
}

// addInnerCorner adds the inner side of a corner: the intersection of the
// offset lines if there is one, both offset points otherwise.  It reports
// whether the intersection was used, in which case the caller skips the
// next offset point.
func (r *Rasterizer) addInnerCorner(P, T1, T2, N1, N2 vec.Vec2, d float64, positiveSide bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, positiveSide); ok {
		r.stroke = append(r.stroke, pt)
		return true
	}
	if positiveSide {
		r.stroke = append(r.stroke, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin adds the outer geometry of a corner at P, where the tangent
// turns from T1 to T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positiveSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)
	if math.Abs(sinTheta) < collinearityThreshold {
		return
	}
	if cosTheta < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}

	switch r.Join {
	case graphics.LineJoinMiter:
		// the miter length is 1/sin(φ/2) for the corner angle φ = π - θ
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			bisector := N1.Add(N2)
			if !positiveSide {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.stroke = append(r.stroke, P.Add(bisector.Mul(d/(l*sinHalf))))
			}
		}
		// beyond the limit the corner is bevelled

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if positiveSide {
			if sinTheta > 0 {
				r.addArc(P, d, N1, angle, false)
			} else {
				r.addArc(P, d, N1, -angle, false)
			}
		} else {
			// the backward pass runs from T2 back to T1
			if sinTheta > 0 {
				r.addArc(P, d, N2.Mul(-1), -angle, false)
			} else {
				r.addArc(P, d, N2.Mul(-1), angle, false)
			}
		}
	}
}

// addArc appends points on the circle around center, starting in
// direction startDir and turning by sweep radians (positive is
// counter-clockwise).  The start point is only added if includeStart is
// set.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	n := 1
	if devRadius >= r.Flatness {
		// a chord over angle θ deviates by radius·(1-cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if !(step > 0) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	dt := sweep / float64(n)
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}

// collectStrokeEdges replaces the edge list by the sides of all outline
// polygons.
func (r *Rasterizer) collectStrokeEdges() {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		if len(poly) < 2 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
}

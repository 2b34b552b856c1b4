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

// Discretizer converts a freeform path into polylines, one per subpath.
// Implementations must return nil if the path cannot be converted
// into valid geometry.
type Discretizer interface {
	Discretize(p *path.Data) []Polyline
}

// Flattener is the default Discretizer.  It replaces Bézier segments by
// straight chords, choosing the number of chords with Wang's formula so
// that the chords stay within Flatness of the curve.
type Flattener struct {
	// Flatness is the maximum distance between a curve and its chords,
	// in the units of the input coordinates.  Must be > 0.
	Flatness float64
}

// DefaultFlattener is the Discretizer used when Options.Discretizer is nil.
var DefaultFlattener = &Flattener{Flatness: defaultFlatness}

// Discretize implements the Discretizer interface.
func (f *Flattener) Discretize(p *path.Data) []Polyline {
	if p == nil || !(f.Flatness > 0) {
		return nil
	}
	if !wellFormed(p) {
		return nil
	}
	for _, c := range p.Coords {
		if !isFinite(c) {
			return nil
		}
	}

	var res []Polyline
	var cur Polyline
	var current, subpath vec.Vec2
	emit := func(_, to vec.Vec2) {
		cur = append(cur, to)
	}
	endSubpath := func() {
		if len(cur) >= 2 {
			res = append(res, cur)
		}
		cur = nil
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			endSubpath()
			current = p.Coords[coordIdx]
			subpath = current
			cur = Polyline{current}
			coordIdx++

		case path.CmdLineTo:
			if cur == nil {
				// continue after a ClosePath
				cur = Polyline{current}
			}
			current = p.Coords[coordIdx]
			cur = append(cur, current)
			coordIdx++

		case path.CmdQuadTo:
			if cur == nil {
				cur = Polyline{current}
			}
			f.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], emit)
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			if cur == nil {
				cur = Polyline{current}
			}
			f.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], emit)
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			if cur != nil && current != subpath {
				cur = append(cur, subpath)
			}
			endSubpath()
			current = subpath
		}
	}
	endSubpath()

	return res
}

// wellFormed reports whether p starts with a MoveTo, uses only known
// commands, and has exactly the number of points these commands need.
func wellFormed(p *path.Data) bool {
	if len(p.Cmds) > 0 && p.Cmds[0] != path.CmdMoveTo {
		return false
	}
	need := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			need++
		case path.CmdQuadTo:
			need += 2
		case path.CmdCubeTo:
			need += 3
		case path.CmdClose:
		default:
			return false
		}
	}
	return need == len(p.Coords)
}

// chordCount limits n to maxChords, so that huge curves cannot stall the
// pipeline.
func chordCount(n float64) int {
	if !(n > 1) {
		return 1
	}
	if n > maxChords {
		return maxChords
	}
	return int(math.Ceil(n))
}

// flattenQuadratic flattens a quadratic Bézier and calls emit for each chord.
// p0 is the start point, p1 is the control point, p2 is the endpoint.
func (f *Flattener) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := chordCount(math.Sqrt(e.Length() / f.Flatness))

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		if i == n {
			pt = p2
		}
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier and calls emit for each chord.
// p0 is start, p1/p2 are controls, p3 is endpoint.
func (f *Flattener) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	// Wang's formula: n = ceil(sqrt(3 * m / (4 * ε)))
	m := max(d1.Length(), d2.Length())
	n := chordCount(math.Sqrt(3 * m / (4 * f.Flatness)))

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		if i == n {
			pt = p3
		}
		emit(prev, pt)
		prev = pt
	}
}

// Linearize converts a curve into straight segments, in the order in which
// they occur along the curve.  The second return value is false if the
// curve cannot produce valid geometry; in this case no segments are
// returned.  If d is nil, DefaultFlattener is used for Freeform curves.
func Linearize(c Curve, d Discretizer) ([]Segment, bool) {
	return appendSegments(nil, c, d)
}

func appendSegments(dst []Segment, c Curve, d Discretizer) ([]Segment, bool) {
	switch c := c.(type) {
	case Line:
		if !isFinite(c.From) || !isFinite(c.To) {
			return dst, false
		}
		return append(dst, Segment{A: c.From, B: c.To}), true

	case *Line:
		if c == nil {
			return dst, false
		}
		return appendSegments(dst, *c, d)

	case Polyline:
		return appendPolyline(dst, c)

	case Freeform:
		if d == nil {
			d = DefaultFlattener
		}
		polys := d.Discretize(c.Path)
		start := len(dst)
		for _, pl := range polys {
			var ok bool
			dst, ok = appendPolyline(dst, pl)
			if !ok {
				return dst[:start], false
			}
		}
		return dst, len(dst) > start

	case *Freeform:
		if c == nil {
			return dst, false
		}
		return appendSegments(dst, *c, d)
	}
	return dst, false
}

func appendPolyline(dst []Segment, pl Polyline) ([]Segment, bool) {
	if len(pl) < 2 {
		return dst, false
	}
	for _, p := range pl {
		if !isFinite(p) {
			return dst, false
		}
	}
	for i := 1; i < len(pl); i++ {
		dst = append(dst, Segment{A: pl[i-1], B: pl[i]})
	}
	return dst, true
}

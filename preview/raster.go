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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a polygon side in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer turns stroked paths into pixel coverage values, the
// fraction of each pixel covered by the stroke, from 0 to 1.  Buffers are
// reused between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip is the device rectangle which receives coverage.  The
	// coordinates must be integers.
	Clip rect.Rect

	// Flatness is the largest deviation, in device pixels, between a
	// curve or arc and the chords which replace it.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit turns miter joins into bevels for sharp corners.
	MiterLimit float64

	// smallPathThreshold is the largest bounding box area, in pixels, which
	// is filled using full 2D buffers.  Larger outlines use an active edge
	// list.
	smallPathThreshold int

	cover       []float32 // cover change per pixel; reused as output
	area        []float32 // area within pixel
	edges       []edge
	activeIdx   []int
	rowHasEdges []bool

	stroke        []vec.Vec2 // outline vertices of all polygons
	strokeOffsets []int      // start of each polygon in stroke

	segs             []strokeSegment // flattened segments of all subpaths
	segsOffsets      []int           // start of each subpath in segs
	subpathClosed    []bool
	degeneratePoints []vec.Vec2 // subpaths without length

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with an
// identity CTM, unit width, butt caps and miter joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,

		smallPathThreshold: smallPathThreshold,
	}
}

// transformLinear applies the 2×2 part of the CTM to v.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic replaces a quadratic Bézier by chords.  The number of
// chords is chosen in device space.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := r.transformLinear(e).Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic replaces a cubic Bézier by chords, using Wang's formula in
// device space.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// addEdge transforms the polygon side p0-p1 to device space and adds it
// to the edge list.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin = min(dx0, dx1)
		r.edgeDevXMax = max(dx0, dx1)
		r.edgeDevYMin = min(dy0, dy1)
		r.edgeDevYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
		r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
		r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
		r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
	}
}

// edgeBounds returns the pixel range touched by the edge list, clamped to
// the clip rectangle.
func (r *Rasterizer) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage model:
//
// Every pixel gets two values.  cover is the signed vertical extent of
// the edges crossing the pixel column, area weights it by the horizontal
// position of the crossing:
//
//	cover = sign * dy
//	area  = cover * (1 - xFrac)
//
// Scanning a row from the left, the coverage of pixel i is
// accum + area[i], after which cover[i] is added to accum.  The nonzero
// rule clamps the absolute value to [0, 1].

// accumulateEdge adds the part of e inside scanline y to the buffers,
// which are indexed by x - bboxXMin.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		// left of the buffer: only the carried cover matters
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}
	if pixLeft == pixRight {
		r.accumulateEdgeInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)
		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)
		if segYMax <= segYMin {
			continue
		}

		coverVal := sign * float32(segYMax-segYMin)
		yMid := (segYMin + segYMax) / 2
		xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)
		areaVal := coverVal * float32(1-xFrac)

		switch {
		case pix < bboxXMin:
			cover[0] += coverVal
			area[0] += coverVal
		case pix < bboxXMax:
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
	}
}

// accumulateEdgeInColumn handles an edge piece inside one pixel column.
func (r *Rasterizer) accumulateEdgeInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)
	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline turns cover and area into final nonzero coverage,
// in place in cover.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset, or nil
// if all values are zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fill emits the nonzero coverage of the edge list.
func (r *Rasterizer) fill(emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, emit)
	}
}

// fillSmall accumulates all edges into one 2D buffer before integrating.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateScanline(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLarge processes one scanline at a time, using an active edge list.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Default values for Rasterizer parameters.
const (
	// defaultFlatness is the curve tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF default.  Corners sharper than
	// about 11.5 degrees are bevelled.
	defaultMiterLimit = 10.0
)

// Numerical tolerances for the Rasterizer.
const (
	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default for Rasterizer.smallPathThreshold.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the shortest stroke segment kept.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the |sin| below which two segments need no
	// join.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself,
	// cos(179.43°).
	cuspCosineThreshold = -0.9999
)

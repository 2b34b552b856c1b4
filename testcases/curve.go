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
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/segnet"
)

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

var curveCases = []TestCase{
	{
		Name:         "quadratic",
		Curves:       freeform(quadraticCurve(10, 50, 32, 10, 54, 50)),
		Tolerance:    0.001,
		BuildIndices: true,
	},
	{
		Name:         "cubic",
		Curves:       freeform(cubicCurve(10, 50, 20, 10, 44, 10, 54, 50)),
		Tolerance:    0.001,
		BuildIndices: true,
	},
	{
		Name:         "circle",
		Curves:       freeform(circle(32, 32, 25)),
		Tolerance:    0.001,
		BuildIndices: true,
	},
	{
		Name:      "circle_flat",
		Curves:    freeform(circle(32, 32, 25)),
		Tolerance: 0.001,
	},
	{
		Name:         "ellipse",
		Curves:       freeform(ellipse(32, 32, 25, 12)),
		Tolerance:    0.01,
		BuildIndices: true,
	},
	{
		Name:         "pie_slice",
		Curves:       freeform(arc(32, 32, 20, 0, 0.75)),
		Tolerance:    0.01,
		BuildIndices: true,
	},
	{
		Name:         "s_shape",
		Curves:       freeform(sCurveQuadratic(10, 32, 54, 32)),
		Tolerance:    0.01,
		BuildIndices: true,
	},
	// a circle drawn twice, once in each direction, collapses to one ring
	{
		Name: "circle_twice",
		Curves: []segnet.Curve{
			segnet.Freeform{Path: circle(32, 32, 25)},
			segnet.Freeform{Path: circle(32, 32, 25)},
		},
		Tolerance:    0.001,
		BuildIndices: true,
	},
	// a curve sharing its end points with straight lines joins the network
	{
		Name: "curve_with_lines",
		Curves: []segnet.Curve{
			line(0, 0, 10, 50),
			segnet.Freeform{Path: cubicCurveOpen(10, 50, 20, 10, 44, 10, 54, 50)},
			line(54, 50, 64, 0),
		},
		Tolerance:    0.01,
		BuildIndices: true,
	},
	{
		Name:         "cubic_degenerate",
		Curves:       freeform(cubicCurve(32, 32, 32, 32, 32, 32, 32, 32)),
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Err: segnet.ErrInputEmpty, Degenerate: 1},
	},
	// the chords of a nearly flat curve snap onto one straight line
	{
		Name:           "nearly_flat_merged",
		Curves:         freeform(cubicCurveOpen(10, 32, 24, 31.999, 40, 31.999, 54, 32)),
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 1, Nodes: 2, Merges: 12},
	},
}

func freeform(p *path.Data) []segnet.Curve {
	return []segnet.Curve{segnet.Freeform{Path: p}}
}

// quadraticCurve builds a closed shape with a quadratic Bezier curve.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2)).
		Close()
}

// cubicCurve builds a closed shape with a cubic Bezier curve.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)).
		Close()
}

// cubicCurveOpen builds an open path with a cubic Bezier curve.
func cubicCurveOpen(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2))
}

// sCurveQuadratic builds a closed S-shaped path from two quadratic Bezier curves.
func sCurveQuadratic(x1, y1, x2, y2 float64) *path.Data {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt((x1+midX)/2, y1-20), pt(midX, midY)).
		QuadTo(pt((midX+x2)/2, y2+20), pt(x2, y2)).
		Close()
}

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) *path.Data {
	return ellipse(cx, cy, r, r)
}

// ellipse builds an approximate ellipse using four cubic Bezier curves.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	kx := rx * kappa
	ky := ry * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).                                     // start at right
		CubeTo(pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)). // top-right quadrant
		CubeTo(pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)). // top-left quadrant
		CubeTo(pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)). // bottom-left quadrant
		CubeTo(pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)). // bottom-right quadrant
		Close()
}

// arc builds a pie slice from startFraction to endFraction (0-1) of a
// full circle, in whole quadrants, starting from the right.
func arc(cx, cy, r float64, startFraction, endFraction float64) *path.Data {
	k := r * kappa

	totalFraction := endFraction - startFraction
	if totalFraction <= 0 {
		return &path.Data{}
	}
	numQuadrants := min(max(int(totalFraction*4), 1), 4)

	p := (&path.Data{}).
		MoveTo(pt(cx, cy)).
		LineTo(pt(cx+r, cy))
	if numQuadrants >= 1 {
		p = p.CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r))
	}
	if numQuadrants >= 2 {
		p = p.CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy))
	}
	if numQuadrants >= 3 {
		p = p.CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r))
	}
	if numQuadrants >= 4 {
		p = p.CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy))
	}
	return p.Close()
}

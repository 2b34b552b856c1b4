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

// largeCases contain enough geometry to make the dedup index and the
// node pool grow beyond their initial capacity.
var largeCases = []TestCase{
	// neighbouring cells share their sides
	{
		Name:         "cell_grid",
		Curves:       freeform(rectangleGrid(8, 8, 512, 512)),
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 144, Nodes: 81, Duplicates: 112},
	},
	{
		Name:      "cell_grid_flat",
		Curves:    freeform(rectangleGrid(8, 8, 512, 512)),
		Tolerance: 0.01,
		Want:      &Want{Edges: 144, Duplicates: 112},
	},
	// finely sampled grid lines reduce to the crossings
	{
		Name:           "sampled_grid_lines",
		Curves:         gridLines(9, 64, 2),
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 144, Nodes: 81, Merges: 432},
	},
	{
		Name:         "sampled_grid_lines_unmerged",
		Curves:       gridLines(9, 64, 2),
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 576, Nodes: 81 + 2*9*24},
	},
}

// rectangleGrid builds a grid of rows×cols rectangles which touch each
// other.
func rectangleGrid(rows, cols, width, height int) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col) * cellW
			y1 := float64(row) * cellH
			x2 := float64(col+1) * cellW
			y2 := float64(row+1) * cellH

			p = p.
				MoveTo(pt(x1, y1)).
				LineTo(pt(x2, y1)).
				LineTo(pt(x2, y2)).
				LineTo(pt(x1, y2)).
				Close()
		}
	}
	return p
}

// gridLines returns n horizontal and n vertical polylines spanning
// [0, size], evenly spaced, each sampled every step units.
func gridLines(n int, size, step float64) []segnet.Curve {
	var res []segnet.Curve
	spacing := size / float64(n-1)
	samples := int(size/step) + 1
	for i := range n {
		c := float64(i) * spacing
		h := make(segnet.Polyline, samples)
		v := make(segnet.Polyline, samples)
		for j := range samples {
			t := float64(j) * step
			h[j] = pt(t, c)
			v[j] = pt(c, t)
		}
		res = append(res, h, v)
	}
	return res
}

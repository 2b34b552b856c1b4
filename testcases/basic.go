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
	"math"

	"seehuhn.de/go/segnet"
)

var basicCases = []TestCase{
	{
		Name:         "l_shape",
		Curves:       []segnet.Curve{line(0, 0, 10, 0), line(10, 0, 10, 10)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 2, Nodes: 3},
	},
	{
		Name:      "l_shape_flat",
		Curves:    []segnet.Curve{line(0, 0, 10, 0), line(10, 0, 10, 10)},
		Tolerance: 0.01,
		Want:      &Want{Edges: 2},
	},
	{
		Name:         "zero_length",
		Curves:       []segnet.Curve{line(5, 5, 5, 5)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Err: segnet.ErrInputEmpty, Degenerate: 1},
	},
	{
		Name:         "reversed_pair",
		Curves:       []segnet.Curve{line(0, 0, 10, 0), line(10, 0, 0, 0)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Duplicates: 1},
	},
	{
		Name: "triple_overlap",
		Curves: []segnet.Curve{
			line(0, 0, 10, 0),
			line(10, 0, 0, 0),
			polyline(0.001, 0, 9.999, 0.002),
		},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Duplicates: 2},
	},
	{
		Name: "triple_overlap_flat",
		Curves: []segnet.Curve{
			polyline(9.999, 0.002, 0.001, 0),
			line(0, 0, 10, 0),
			line(10, 0, 0, 0),
		},
		Tolerance: 0.01,
		Want:      &Want{Edges: 1, Duplicates: 2},
	},
	{
		Name:         "closed_square",
		Curves:       []segnet.Curve{polyline(0, 0, 10, 0, 10, 10, 0, 10, 0, 0)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 4, Nodes: 4},
	},
	{
		Name: "invalid_mix",
		Curves: []segnet.Curve{
			nil,
			polyline(1, 1),
			line(0, 0, math.NaN(), 1),
			segnet.Freeform{},
			line(0, 0, 3, 4),
		},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Skipped: 4},
	},
	{
		Name:         "short_segment",
		Curves:       []segnet.Curve{line(0, 0, 0.005, 0), line(0, 0, 0, 1)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Degenerate: 1},
	},
}

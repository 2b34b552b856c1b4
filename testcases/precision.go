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

import "seehuhn.de/go/segnet"

var precisionCases = []TestCase{
	// endpoints closer than half a grid cell end up in the same node
	{
		Name:         "near_coincident",
		Curves:       []segnet.Curve{line(0, 0, 1, 0), line(1.0004, 0.0003, 1, 1)},
		Tolerance:    0.001,
		BuildIndices: true,
		Want:         &Want{Edges: 2, Nodes: 3},
	},
	// points on either side of a cell boundary stay apart
	{
		Name:         "cell_boundary",
		Curves:       []segnet.Curve{line(0.0049, 0, 0, 5), line(0.0051, 0, 0, 5)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 2, Nodes: 3},
	},
	{
		Name:         "negative_coordinates",
		Curves:       []segnet.Curve{line(-10, -10, -5, -10), line(-5, -10, -5, -5)},
		Tolerance:    0.5,
		BuildIndices: true,
		Want:         &Want{Edges: 2, Nodes: 3},
	},
	// a segment exactly one cell long is degenerate
	{
		Name:         "one_cell",
		Curves:       []segnet.Curve{line(0, 0, 1, 0), line(0, 0, 0, 5)},
		Tolerance:    1,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Degenerate: 1},
	},
	// the same, for a grid size which is not a binary fraction
	{
		Name: "one_cell_fractional",
		Curves: []segnet.Curve{
			line(0.2, 0, 0.3, 0),
			line(0.7, 0, 0.8, 0),
			line(0, 0, 0, 1),
		},
		Tolerance:    0.1,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Degenerate: 2},
	},
	{
		Name:         "coarse_tolerance",
		Curves:       []segnet.Curve{polyline(0, 0, 0.2, 0.1, 0.4, 0, 10, 0)},
		Tolerance:    1,
		BuildIndices: true,
		Want:         &Want{Edges: 1, Nodes: 2, Degenerate: 2},
	},
}

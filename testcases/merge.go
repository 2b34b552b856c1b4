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

var mergeCases = []TestCase{
	{
		Name:           "straight_chain",
		Curves:         []segnet.Curve{polyline(0, 0, 1, 0, 2, 0, 3, 0)},
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 1, Nodes: 2, Merges: 2},
	},
	{
		Name:         "straight_chain_unmerged",
		Curves:       []segnet.Curve{polyline(0, 0, 1, 0, 2, 0, 3, 0)},
		Tolerance:    0.01,
		BuildIndices: true,
		Want:         &Want{Edges: 3, Nodes: 4},
	},
	{
		Name:           "straight_chain_flat",
		Curves:         []segnet.Curve{polyline(0, 0, 1, 1, 2, 2), line(3, 3, 2, 2)},
		Tolerance:      0.01,
		MergeCollinear: true,
		Want:           &Want{Edges: 1, Merges: 2},
	},
	{
		Name: "t_junction",
		Curves: []segnet.Curve{
			polyline(0, 0, 1, 0, 2, 0),
			line(1, 0, 1, 1),
		},
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 3, Nodes: 4},
	},
	{
		Name:           "bent_chain",
		Curves:         []segnet.Curve{polyline(0, 0, 1, 0, 2, 1)},
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 2, Nodes: 3},
	},
	{
		Name: "subdivided_square",
		Curves: []segnet.Curve{
			polyline(0, 0, 1, 0, 2, 0, 2, 1, 2, 2, 1, 2, 0, 2, 0, 1, 0, 0),
		},
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 4, Nodes: 4, Merges: 4},
	},
	// merging the middle node would duplicate the direct edge
	{
		Name: "shortcut_kept",
		Curves: []segnet.Curve{
			polyline(0, 0, 1, 0, 2, 0),
			line(0, 0, 2, 0),
		},
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 3, Nodes: 3},
	},
	// a doubled-back chain is not straight
	{
		Name:           "folded_chain",
		Curves:         []segnet.Curve{polyline(0, 0, 2, 0, 1, 0)},
		Tolerance:      0.01,
		MergeCollinear: true,
		BuildIndices:   true,
		Want:           &Want{Edges: 2, Nodes: 3},
	},
}

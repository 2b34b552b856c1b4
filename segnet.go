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

// Package segnet prepares user-drawn 2D curves for network analysis.
//
// [Prepare] turns lines, polylines and freeform paths into a network of
// straight edges: curves are linearized, endpoints are snapped to a grid
// of the given tolerance, zero-length and duplicate edges are removed,
// degree-two nodes on straight runs can optionally be merged away, and
// the result is written either as one coordinate quadruple per edge
// (flat mode) or as a node list plus an index list (indexed mode).
// The output carries its bounding box and a content hash, which callers
// can use to detect unchanged geometry.
package segnet

//go:generate go run ./testcases/export

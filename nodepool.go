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

import "seehuhn.de/go/geom/vec"

// NodePool assigns contiguous indices to grid cells, in the order in
// which the cells are first seen.
type NodePool struct {
	index map[GridKey]uint32
	nodes []vec.Vec2
}

// NewNodePool returns an empty pool.
func NewNodePool(sizeHint int) *NodePool {
	return &NodePool{
		index: make(map[GridKey]uint32, sizeHint),
		nodes: make([]vec.Vec2, 0, sizeHint),
	}
}

// IndexOf returns the index of q, assigning the next free index if q has
// not been seen before.
func (p *NodePool) IndexOf(q QuantizedPoint) uint32 {
	if i, ok := p.index[q.Key]; ok {
		return i
	}
	i := uint32(len(p.nodes))
	p.index[q.Key] = i
	p.nodes = append(p.nodes, q.Canonical)
	return i
}

// Len returns the number of nodes in the pool.
func (p *NodePool) Len() int {
	return len(p.nodes)
}

// Node returns the canonical coordinate of node i.
func (p *NodePool) Node(i uint32) vec.Vec2 {
	return p.nodes[i]
}

// appendCoords appends the node coordinates, ordered by index, as
// interleaved x, y values.
func (p *NodePool) appendCoords(dst []float64) []float64 {
	for _, n := range p.nodes {
		dst = append(dst, n.X, n.Y)
	}
	return dst
}

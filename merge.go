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
	"slices"
)

// Merger simplifies the kept edge list before node indexing.
//
// Merge may rewrite edges but must keep idx consistent with the returned
// list, so that the list never contains two edges with the same key.
// The second return value is the number of merge operations performed.
type Merger interface {
	Merge(edges []Edge, idx *DedupIndex) ([]Edge, int)
}

// NoMerge is the pass-through Merger.  It returns its input unchanged.
type NoMerge struct{}

// Merge implements the Merger interface.
func (NoMerge) Merge(edges []Edge, _ *DedupIndex) ([]Edge, int) {
	return edges, 0
}

// CollinearMerger removes nodes of degree two whose incident edges
// continue in a straight line.  The two edges are replaced by one edge
// between the outer endpoints.
//
// Merges which would produce an edge that is already present are
// skipped, so the node is kept in this case.
type CollinearMerger struct {
	// AngleTolerance is the largest deviation from a straight angle, in
	// radians, for which two edges are considered collinear.
	AngleTolerance float64

	// MaxPasses bounds the number of sweeps over the node list.
	// Zero means defaultMergePasses.
	MaxPasses int
}

// DefaultCollinearMerger is used when Options.MergeCollinear is set and
// Options.Merger is nil.
var DefaultCollinearMerger = &CollinearMerger{
	AngleTolerance: defaultAngleTolerance,
	MaxPasses:      defaultMergePasses,
}

// Merge implements the Merger interface.
func (m *CollinearMerger) Merge(edges []Edge, idx *DedupIndex) ([]Edge, int) {
	if len(edges) < 2 {
		return edges, 0
	}
	passes := m.MaxPasses
	if passes <= 0 {
		passes = defaultMergePasses
	}
	sinTol := math.Sin(max(m.AngleTolerance, 0))

	edges = slices.Clone(edges)
	alive := make([]bool, len(edges))
	incident := make(map[GridKey][]int, 2*len(edges))
	var order []GridKey // nodes in first-appearance order
	attach := func(k GridKey, i int) {
		if _, seen := incident[k]; !seen {
			order = append(order, k)
		}
		incident[k] = append(incident[k], i)
	}
	for i, e := range edges {
		alive[i] = true
		attach(e.A.Key, i)
		attach(e.B.Key, i)
	}

	merges := 0
	for range passes {
		changed := false
		for _, n := range order {
			inc := incident[n]
			if len(inc) != 2 {
				continue
			}
			i, j := inc[0], inc[1]
			if j < i {
				i, j = j, i
			}
			e1, e2 := edges[i], edges[j]
			o1, o2 := e1.Other(n), e2.Other(n)
			if o1.Key == o2.Key {
				continue
			}
			mid := e1.A
			if mid.Key != n {
				mid = e1.B
			}
			u := o1.Canonical.Sub(mid.Canonical)
			v := o2.Canonical.Sub(mid.Canonical)
			if !straight(u.X, u.Y, v.X, v.Y, sinTol) {
				continue
			}

			// keep the direction of the first edge along the chain
			merged := Edge{A: o1, B: o2}
			if e1.A.Key == n {
				merged = Edge{A: o2, B: o1}
			}
			if idx.Contains(merged.Key()) {
				continue
			}
			idx.Replace(merged, e1.Key(), e2.Key())

			edges[i] = merged
			alive[j] = false
			incident[n] = nil
			outer := incident[o2.Key]
			for k, x := range outer {
				if x == j {
					outer[k] = i
				}
			}
			merges++
			changed = true
		}
		if !changed {
			break
		}
	}

	out := edges[:0]
	for i, e := range edges {
		if alive[i] {
			out = append(out, e)
		}
	}
	return out, merges
}

// straight reports whether the vectors u and v, both pointing away from a
// common node, form a straight angle within the given sine tolerance.
func straight(ux, uy, vx, vy, sinTol float64) bool {
	dot := ux*vx + uy*vy
	if dot >= 0 {
		return false
	}
	cross := ux*vy - uy*vx
	lu := math.Hypot(ux, uy)
	lv := math.Hypot(vx, vy)
	return math.Abs(cross) <= sinTol*lu*lv
}

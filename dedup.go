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

// Edge is a kept segment between two snapped points.
// A and B keep the direction in which the edge was first seen.
type Edge struct {
	A, B QuantizedPoint
}

// Key returns the orientation-independent identity of the edge.
func (e Edge) Key() EdgeKey {
	return MakeEdgeKey(e.A.Key, e.B.Key)
}

// Other returns the end of e which is not k.
func (e Edge) Other(k GridKey) QuantizedPoint {
	if e.A.Key == k {
		return e.B
	}
	return e.A
}

// Vec returns the vector from A to B, in canonical coordinates.
func (e Edge) Vec() vec.Vec2 {
	return e.B.Canonical.Sub(e.A.Canonical)
}

// EdgeKey is the canonical key of an undirected edge: Lo is never
// greater than Hi in the GridKey order.
type EdgeKey struct {
	Lo, Hi GridKey
}

// MakeEdgeKey returns the canonical key for the edge between a and b.
// MakeEdgeKey(a, b) == MakeEdgeKey(b, a) for all a, b.
func MakeEdgeKey(a, b GridKey) EdgeKey {
	if b.Compare(a) < 0 {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

// DedupIndex removes duplicate undirected edges.
// The first occurrence of each EdgeKey is kept.
type DedupIndex struct {
	seen       map[EdgeKey]struct{}
	duplicates int
}

// NewDedupIndex returns an empty index.
func NewDedupIndex(sizeHint int) *DedupIndex {
	return &DedupIndex{
		seen: make(map[EdgeKey]struct{}, sizeHint),
	}
}

// Admit reports whether e is new.  If an edge with the same key was
// admitted before, in either direction, e is rejected and counted as a
// duplicate.
func (d *DedupIndex) Admit(e Edge) bool {
	k := e.Key()
	if _, dup := d.seen[k]; dup {
		d.duplicates++
		return false
	}
	d.seen[k] = struct{}{}
	return true
}

// Contains reports whether an edge with key k has been admitted.
func (d *DedupIndex) Contains(k EdgeKey) bool {
	_, ok := d.seen[k]
	return ok
}

// Replace removes the keys in old and admits the key of e.
// This is used when edges are rewritten after admission.
func (d *DedupIndex) Replace(e Edge, old ...EdgeKey) {
	for _, k := range old {
		delete(d.seen, k)
	}
	d.seen[e.Key()] = struct{}{}
}

// Len returns the number of distinct edges admitted.
func (d *DedupIndex) Len() int {
	return len(d.seen)
}

// Duplicates returns the number of rejected edges.
func (d *DedupIndex) Duplicates() int {
	return d.duplicates
}

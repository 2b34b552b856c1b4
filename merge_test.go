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
	"testing"
)

// chain snaps the polyline through the given points into edges and
// admits them to a fresh dedup index.
func chain(t *testing.T, tol float64, xy ...float64) ([]Edge, *DedupIndex) {
	t.Helper()
	s, _ := NewSnapper(tol)
	idx := NewDedupIndex(0)
	var edges []Edge
	for i := 0; i+3 < len(xy); i += 2 {
		e := snapEdge(t, s, xy[i], xy[i+1], xy[i+2], xy[i+3])
		if idx.Admit(e) {
			edges = append(edges, e)
		}
	}
	return edges, idx
}

func checkIndex(t *testing.T, edges []Edge, idx *DedupIndex) {
	t.Helper()
	if idx.Len() != len(edges) {
		t.Errorf("index has %d keys for %d edges", idx.Len(), len(edges))
	}
	for _, e := range edges {
		if !idx.Contains(e.Key()) {
			t.Errorf("edge %v missing from index", e.Key())
		}
	}
}

func TestNoMerge(t *testing.T) {
	edges, idx := chain(t, 1, 0, 0, 1, 0, 2, 0)
	out, n := NoMerge{}.Merge(edges, idx)
	if n != 0 || len(out) != 2 {
		t.Errorf("got %d edges, %d merges", len(out), n)
	}
}

func TestCollinearMerge(t *testing.T) {
	tests := []struct {
		name   string
		xy     []float64
		edges  int
		merges int
	}{
		{"straight", []float64{0, 0, 1, 0, 2, 0, 3, 0, 4, 0}, 1, 3},
		{"diagonal", []float64{0, 0, 1, 1, 2, 2}, 1, 1},
		{"corner", []float64{0, 0, 2, 0, 2, 2}, 2, 0},
		{"corner with straight legs", []float64{0, 0, 1, 0, 2, 0, 2, 1, 2, 2}, 2, 2},
		{"fold back", []float64{0, 0, 2, 0, 1, 0}, 2, 0},
		{"single edge", []float64{0, 0, 1, 0}, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			edges, idx := chain(t, 1, tc.xy...)
			out, n := DefaultCollinearMerger.Merge(edges, idx)
			if len(out) != tc.edges || n != tc.merges {
				t.Errorf("got %d edges, %d merges, want %d, %d",
					len(out), n, tc.edges, tc.merges)
			}
			checkIndex(t, out, idx)
		})
	}
}

func TestCollinearMergeKeepsDirection(t *testing.T) {
	edges, idx := chain(t, 1, 4, 0, 3, 0, 2, 0)
	out, _ := DefaultCollinearMerger.Merge(edges, idx)
	if len(out) != 1 {
		t.Fatalf("got %d edges", len(out))
	}
	if out[0].A.Key != (GridKey{4, 0}) || out[0].B.Key != (GridKey{2, 0}) {
		t.Errorf("merged edge %v -> %v", out[0].A.Key, out[0].B.Key)
	}
}

func TestCollinearMergeClosedLoop(t *testing.T) {
	// a triangle subdivided along each side
	edges, idx := chain(t, 1,
		0, 0, 2, 0, 4, 0, 2, 2, 0, 4, 0, 2, 0, 0)
	out, n := DefaultCollinearMerger.Merge(edges, idx)
	if len(out) != 3 || n != 3 {
		t.Errorf("got %d edges, %d merges, want 3, 3", len(out), n)
	}
	checkIndex(t, out, idx)
}

func TestCollinearMergeDoesNotModifyInput(t *testing.T) {
	edges, idx := chain(t, 1, 0, 0, 1, 0, 2, 0)
	orig := append([]Edge(nil), edges...)
	DefaultCollinearMerger.Merge(edges, idx)
	for i := range orig {
		if edges[i] != orig[i] {
			t.Errorf("edge %d changed", i)
		}
	}
}

func TestAngleTolerance(t *testing.T) {
	// the middle vertex is 0.004 units off the line through the ends
	xy := []float64{0, 0, 10, 0.004, 20, 0}

	edges, idx := chain(t, 0.001, xy...)
	out, _ := DefaultCollinearMerger.Merge(edges, idx)
	if len(out) != 1 {
		t.Errorf("default tolerance: got %d edges, want 1", len(out))
	}

	strict := &CollinearMerger{AngleTolerance: 1e-6}
	edges, idx = chain(t, 0.001, xy...)
	out, _ = strict.Merge(edges, idx)
	if len(out) != 2 {
		t.Errorf("strict tolerance: got %d edges, want 2", len(out))
	}
}

func TestStraight(t *testing.T) {
	sin := math.Sin(1e-3)
	if !straight(-1, 0, 1, 0, sin) {
		t.Error("opposite vectors not straight")
	}
	if straight(1, 0, 1, 0, sin) {
		t.Error("parallel vectors straight")
	}
	if straight(-1, 0, 0, 1, sin) {
		t.Error("right angle straight")
	}
}

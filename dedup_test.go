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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func snapEdge(t *testing.T, s *Snapper, x0, y0, x1, y1 float64) Edge {
	t.Helper()
	a, okA := s.Snap(vec.Vec2{X: x0, Y: y0})
	b, okB := s.Snap(vec.Vec2{X: x1, Y: y1})
	if !okA || !okB {
		t.Fatalf("cannot snap (%g,%g)-(%g,%g)", x0, y0, x1, y1)
	}
	return Edge{A: a, B: b}
}

func TestMakeEdgeKeySymmetric(t *testing.T) {
	keys := []GridKey{{0, 0}, {1, 0}, {0, 1}, {-3, 7}}
	for _, a := range keys {
		for _, b := range keys {
			k1 := MakeEdgeKey(a, b)
			k2 := MakeEdgeKey(b, a)
			if k1 != k2 {
				t.Errorf("MakeEdgeKey(%v, %v) = %v, reversed %v", a, b, k1, k2)
			}
			if k1.Lo.Compare(k1.Hi) > 0 {
				t.Errorf("key %v not canonical", k1)
			}
		}
	}
}

func TestDedupIndex(t *testing.T) {
	s, _ := NewSnapper(0.01)
	idx := NewDedupIndex(0)

	e1 := snapEdge(t, s, 0, 0, 10, 0)
	e2 := snapEdge(t, s, 10, 0, 0, 0)
	e3 := snapEdge(t, s, 0.001, 0.002, 9.999, 0)
	e4 := snapEdge(t, s, 0, 0, 0, 10)

	if !idx.Admit(e1) {
		t.Error("first edge rejected")
	}
	if idx.Admit(e2) {
		t.Error("reversed edge admitted")
	}
	if idx.Admit(e3) {
		t.Error("edge within tolerance admitted")
	}
	if !idx.Admit(e4) {
		t.Error("new edge rejected")
	}
	if idx.Len() != 2 || idx.Duplicates() != 2 {
		t.Errorf("len=%d duplicates=%d, want 2, 2", idx.Len(), idx.Duplicates())
	}
	if !idx.Contains(e2.Key()) {
		t.Error("Contains failed for reversed key")
	}
}

func TestDedupReplace(t *testing.T) {
	s, _ := NewSnapper(1)
	idx := NewDedupIndex(4)
	e1 := snapEdge(t, s, 0, 0, 1, 0)
	e2 := snapEdge(t, s, 1, 0, 2, 0)
	idx.Admit(e1)
	idx.Admit(e2)

	merged := snapEdge(t, s, 0, 0, 2, 0)
	idx.Replace(merged, e1.Key(), e2.Key())
	if idx.Len() != 1 {
		t.Errorf("len = %d, want 1", idx.Len())
	}
	if idx.Contains(e1.Key()) || idx.Contains(e2.Key()) {
		t.Error("old keys still present")
	}
	if !idx.Contains(merged.Key()) {
		t.Error("merged key missing")
	}
}

func TestEdgeOther(t *testing.T) {
	s, _ := NewSnapper(1)
	e := snapEdge(t, s, 0, 0, 3, 4)
	if got := e.Other(e.A.Key); got != e.B {
		t.Errorf("Other(A) = %v", got)
	}
	if got := e.Other(e.B.Key); got != e.A {
		t.Errorf("Other(B) = %v", got)
	}
	if l := e.Vec().Length(); l != 5 {
		t.Errorf("length = %g, want 5", l)
	}
}

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
	"cmp"
	"math"

	"seehuhn.de/go/geom/vec"
)

// GridKey identifies a cell of the snapping grid.
// The cell with key (i, j) has its canonical point at (i·tol, j·tol).
type GridKey struct {
	X, Y int64
}

// Compare orders grid keys lexicographically, first by X and then by Y.
func (k GridKey) Compare(other GridKey) int {
	if c := cmp.Compare(k.X, other.X); c != 0 {
		return c
	}
	return cmp.Compare(k.Y, other.Y)
}

// QuantizedPoint is a grid cell together with its canonical coordinate.
type QuantizedPoint struct {
	Key       GridKey
	Canonical vec.Vec2

	// First is the first raw point which was snapped to this cell.
	First vec.Vec2
}

// Snapper maps raw points onto a uniform grid with cell size Tolerance.
//
// The mapping from a raw point to its GridKey is a pure function of the
// point and the tolerance.  The first raw point which maps to a given key
// creates the arena entry for that key; all later points mapping to the
// same key receive the stored canonical coordinate.
type Snapper struct {
	tol   float64
	arena []QuantizedPoint
	index map[GridKey]int

	// merged counts raw points which landed in an occupied cell at a
	// position different from the cell's first point.
	merged int
}

// NewSnapper returns a Snapper for the given grid size.
// The tolerance must be positive and finite.
func NewSnapper(tol float64) (*Snapper, error) {
	if err := checkTolerance(tol); err != nil {
		return nil, err
	}
	return &Snapper{
		tol:   tol,
		index: make(map[GridKey]int),
	}, nil
}

// Tolerance returns the grid cell size.
func (s *Snapper) Tolerance() float64 {
	return s.tol
}

// Key returns the grid cell containing p.  The second return value is
// false if the cell index cannot be represented.
func (s *Snapper) Key(p vec.Vec2) (GridKey, bool) {
	x := math.Round(p.X / s.tol)
	y := math.Round(p.Y / s.tol)
	if !(math.Abs(x) <= maxGridIndex && math.Abs(y) <= maxGridIndex) {
		return GridKey{}, false
	}
	return GridKey{X: int64(x), Y: int64(y)}, true
}

// Canonical returns the canonical coordinate of a grid cell.
func (s *Snapper) Canonical(k GridKey) vec.Vec2 {
	return vec.Vec2{X: float64(k.X) * s.tol, Y: float64(k.Y) * s.tol}
}

// Snap returns the quantized point for p.
func (s *Snapper) Snap(p vec.Vec2) (QuantizedPoint, bool) {
	k, ok := s.Key(p)
	if !ok {
		return QuantizedPoint{}, false
	}
	if i, seen := s.index[k]; seen {
		q := s.arena[i]
		if q.First != p {
			s.merged++
		}
		return q, true
	}
	q := QuantizedPoint{
		Key:       k,
		Canonical: s.Canonical(k),
		First:     p,
	}
	s.index[k] = len(s.arena)
	s.arena = append(s.arena, q)
	return q, true
}

// Degenerate reports whether a snapped segment must be dropped: either
// both ends coincide, or they are no more than one tolerance apart.
//
// The distance between canonical points is tol·|Δkey|, so the test is
// done on the keys.  This keeps the decision independent of where the
// segment lies on the grid.
func (s *Snapper) Degenerate(a, b QuantizedPoint) bool {
	dx := b.Key.X - a.Key.X
	dy := b.Key.Y - a.Key.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	return dx*dx+dy*dy <= 1
}

// Len returns the number of distinct grid cells seen so far.
func (s *Snapper) Len() int {
	return len(s.arena)
}

// Merged returns the number of raw points which were moved onto a cell
// first occupied by a different raw point.
func (s *Snapper) Merged() int {
	return s.merged
}

func checkTolerance(tol float64) error {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return ErrInvalidTolerance
	}
	return nil
}

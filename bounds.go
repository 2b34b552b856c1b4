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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Bounds accumulates the bounding box of a set of points.
// The zero value is an empty accumulator.
type Bounds struct {
	xMin, yMin float64
	xMax, yMax float64
	nonEmpty   bool
}

// Observe extends the bounding box to include p.
func (b *Bounds) Observe(p vec.Vec2) {
	if !b.nonEmpty {
		b.xMin, b.xMax = p.X, p.X
		b.yMin, b.yMax = p.Y, p.Y
		b.nonEmpty = true
		return
	}
	b.xMin = min(b.xMin, p.X)
	b.xMax = max(b.xMax, p.X)
	b.yMin = min(b.yMin, p.Y)
	b.yMax = max(b.yMax, p.Y)
}

// Rect returns the bounding box.  The second return value is false if no
// point has been observed.
func (b *Bounds) Rect() (rect.Rect, bool) {
	if !b.nonEmpty {
		return rect.Rect{}, false
	}
	return rect.Rect{LLx: b.xMin, LLy: b.yMin, URx: b.xMax, URy: b.yMax}, true
}

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
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// GraphInput is the prepared, immutable input for a network analysis
// engine.
//
// In flat mode the coordinate buffer holds x0, y0, x1, y1 for every edge
// and there is no index buffer.  In indexed mode the coordinate buffer
// holds one x, y pair per node, ordered by node index, and the index
// buffer holds one i, j pair of node indices per edge.
type GraphInput struct {
	coords  []float64
	indices []uint32
	hash    string
	bbox    rect.Rect
}

// ErrMalformed is returned by Restore for buffers which violate the
// GraphInput layout.
var ErrMalformed = errors.New("segnet: malformed graph buffers")

// Restore rebuilds a GraphInput from its buffers, for example after
// reading it from storage.  The hash and bounding box are recomputed.
// A nil indices slice selects flat mode.
func Restore(coords []float64, indices []uint32) (*GraphInput, error) {
	if len(coords) == 0 {
		return nil, ErrInputEmpty
	}
	for _, x := range coords {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: non-finite coordinate", ErrMalformed)
		}
	}
	if indices == nil {
		if len(coords)%4 != 0 {
			return nil, fmt.Errorf("%w: %d flat coordinates", ErrMalformed, len(coords))
		}
	} else {
		if len(coords)%2 != 0 || len(indices)%2 != 0 || len(indices) == 0 {
			return nil, fmt.Errorf("%w: %d coordinates, %d indices",
				ErrMalformed, len(coords), len(indices))
		}
		n := uint32(len(coords) / 2)
		for _, i := range indices {
			if i >= n {
				return nil, fmt.Errorf("%w: node index %d out of range", ErrMalformed, i)
			}
		}
	}

	var b Bounds
	for i := 0; i+1 < len(coords); i += 2 {
		b.Observe(vec.Vec2{X: coords[i], Y: coords[i+1]})
	}
	bbox, _ := b.Rect()

	g := &GraphInput{
		coords: slices.Clone(coords),
		bbox:   bbox,
	}
	if indices != nil {
		g.indices = slices.Clone(indices)
	}
	g.hash = HashBuffers(g.coords, g.indices)
	return g, nil
}

// Coords returns a copy of the coordinate buffer.
func (g *GraphInput) Coords() []float64 {
	return slices.Clone(g.coords)
}

// Indices returns a copy of the index buffer, or nil in flat mode.
func (g *GraphInput) Indices() []uint32 {
	if g.indices == nil {
		return nil
	}
	return slices.Clone(g.indices)
}

// Hash returns the content fingerprint of the buffers.
func (g *GraphInput) Hash() string {
	return g.hash
}

// BBox returns the bounding box of all edge endpoints.
func (g *GraphInput) BBox() rect.Rect {
	return g.bbox
}

// Indexed reports whether the graph uses the indexed layout.
func (g *GraphInput) Indexed() bool {
	return g.indices != nil
}

// NumPoints returns the number of x, y pairs in the coordinate buffer.
func (g *GraphInput) NumPoints() int {
	return len(g.coords) / 2
}

// NumEdges returns the number of edges.
func (g *GraphInput) NumEdges() int {
	if g.indices != nil {
		return len(g.indices) / 2
	}
	return len(g.coords) / 4
}

// Unchanged reports whether g has the given previous hash.
// Callers use this to skip resubmitting unchanged geometry.
func (g *GraphInput) Unchanged(prevHash string) bool {
	return prevHash != "" && prevHash == g.hash
}

// Segments iterates over the edges, resolving node indices in indexed
// mode.
func (g *GraphInput) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if g.indices == nil {
			for i := 0; i+3 < len(g.coords); i += 4 {
				s := Segment{
					A: vec.Vec2{X: g.coords[i], Y: g.coords[i+1]},
					B: vec.Vec2{X: g.coords[i+2], Y: g.coords[i+3]},
				}
				if !yield(s) {
					return
				}
			}
			return
		}
		for i := 0; i+1 < len(g.indices); i += 2 {
			a, b := 2*g.indices[i], 2*g.indices[i+1]
			s := Segment{
				A: vec.Vec2{X: g.coords[a], Y: g.coords[a+1]},
				B: vec.Vec2{X: g.coords[b], Y: g.coords[b+1]},
			}
			if !yield(s) {
				return
			}
		}
	}
}

func (g *GraphInput) String() string {
	if g == nil {
		return "GraphInput(nil)"
	}
	return fmt.Sprintf("GraphInput Coords=%dpts Indices=%dlines Hash=%s",
		g.NumPoints(), len(g.indices)/2, g.hash)
}

type graphInputJSON struct {
	Coords  []float64  `json:"coords"`
	Indices []uint32   `json:"indices,omitempty"`
	Hash    string     `json:"hash"`
	BBox    [4]float64 `json:"bbox"`
}

// MarshalJSON implements the json.Marshaler interface.
func (g *GraphInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphInputJSON{
		Coords:  g.coords,
		Indices: g.indices,
		Hash:    g.hash,
		BBox:    [4]float64{g.bbox.LLx, g.bbox.LLy, g.bbox.URx, g.bbox.URy},
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The buffers are validated with Restore, and the stored hash must match
// the recomputed one.
func (g *GraphInput) UnmarshalJSON(data []byte) error {
	var raw graphInputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r, err := Restore(raw.Coords, raw.Indices)
	if err != nil {
		return err
	}
	if raw.Hash != "" && raw.Hash != r.hash {
		return fmt.Errorf("%w: hash mismatch", ErrMalformed)
	}
	*g = *r
	return nil
}

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
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// HashBuffers returns the content fingerprint of a pair of output buffers:
// the base64 encoding of the SHA-256 digest over the little-endian bytes
// of coords followed by the little-endian bytes of indices.
//
// Identical buffers always give identical hashes.
func HashBuffers(coords []float64, indices []uint32) string {
	h := sha256.New()
	buf := make([]byte, 0, hashChunk*8)
	for _, x := range coords {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
		if len(buf) == cap(buf) {
			h.Write(buf)
			buf = buf[:0]
		}
	}
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, i)
		if len(buf)+4 > cap(buf) {
			h.Write(buf)
			buf = buf[:0]
		}
	}
	h.Write(buf)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// EdgeID returns a short stable identifier for the undirected edge between
// a and b.  Both points are rounded to the tolerance grid first, so that
// all edges which snap to the same cells share an identifier.  The result
// has the form "E_" followed by eight upper-case hex digits.
func EdgeID(a, b vec.Vec2, tol float64) string {
	if b.X < a.X || (math.Abs(b.X-a.X) < 1e-12 && b.Y < a.Y) {
		a, b = b, a
	}
	round := func(v float64) float64 {
		r := math.Round(v/tol) * tol
		if r == 0 {
			r = 0 // no negative zero
		}
		return r
	}
	s := fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", round(a.X), round(a.Y), round(b.X), round(b.Y))
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("E_%08X", binary.BigEndian.Uint32(sum[:4]))
}

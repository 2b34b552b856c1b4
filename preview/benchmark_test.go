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

package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/segnet"
)

// starGraph returns a star of n spokes around the origin.
func starGraph(b *testing.B, n int) *segnet.GraphInput {
	b.Helper()
	curves := make([]segnet.Curve, n)
	for i := range curves {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		curves[i] = segnet.Line{To: vec.Vec2{X: 100 * cos, Y: 100 * sin}}
	}
	g, _, err := segnet.Prepare(context.Background(), curves, nil)
	if err != nil {
		b.Fatal(err)
	}
	return g
}

// BenchmarkRenderStar benchmarks the stroker drawing a star.
func BenchmarkRenderStar(b *testing.B) {
	g := starGraph(b, 64)
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			opts := &Options{Width: size, Height: size, LineWidth: 1}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Render(g, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkVectorStar benchmarks x/image/vector drawing the same star,
// with one rectangle per segment and butt caps.
func BenchmarkVectorStar(b *testing.B) {
	g := starGraph(b, 64)
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewGray(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Gray{Y: 255})
			ctm := fit(g, float64(size), float64(size), 0, float64(size))

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				for s := range g.Segments() {
					a := vec.Vec2{X: ctm[0]*s.A.X + ctm[4], Y: ctm[3]*s.A.Y + ctm[5]}
					c := vec.Vec2{X: ctm[0]*s.B.X + ctm[4], Y: ctm[3]*s.B.Y + ctm[5]}
					addVectorLine(r, a, c, 0.5)
				}
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// addVectorLine adds the rectangle covering the segment a-b.  All
// rectangles have the same orientation, so that overlaps do not cancel.
func addVectorLine(r *vector.Rasterizer, a, b vec.Vec2, half float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := vec.Vec2{X: -d.Y * half / l, Y: d.X * half / l}

	p0, p1, p2, p3 := a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)
	r.MoveTo(float32(p0.X), float32(p0.Y))
	r.LineTo(float32(p1.X), float32(p1.Y))
	r.LineTo(float32(p2.X), float32(p2.Y))
	r.LineTo(float32(p3.X), float32(p3.Y))
	r.ClosePath()
}

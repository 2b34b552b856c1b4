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

// Package preview renders prepared segment networks to grey-scale images.
package preview

import (
	"errors"
	"image"
	"image/png"
	"io"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/segnet"
)

// MaxSize is the largest accepted image width or height, in pixels.
const MaxSize = 4096

// Options control the rendering.
type Options struct {
	Width, Height int     // image size in pixels
	Margin        float64 // border in pixels
	LineWidth     float64 // stroke width in pixels
}

// DefaultOptions is used when nil options are passed to Render.
var DefaultOptions = &Options{
	Width:     512,
	Height:    512,
	Margin:    8,
	LineWidth: 1,
}

var (
	// ErrNoGraph is returned when there is nothing to render.
	ErrNoGraph = errors.New("preview: no graph")

	// ErrImageSize is returned when the image is larger than MaxSize in
	// either direction, or would have no pixels inside the margin.
	ErrImageSize = errors.New("preview: invalid image size")
)

// Render draws every edge of g as a white line on black background.
// The bounding box of g is scaled uniformly to fit the image, with the
// y-axis pointing up.  Lines have round caps and joins.
func Render(g *segnet.GraphInput, opts *Options) (*image.Gray, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	if g == nil || g.NumEdges() == 0 {
		return nil, ErrNoGraph
	}
	w, h := opts.Width, opts.Height
	m := max(opts.Margin, 0)
	innerW := float64(w) - 2*m
	innerH := float64(h) - 2*m
	if w <= 0 || h <= 0 || w > MaxSize || h > MaxSize || innerW <= 0 || innerH <= 0 {
		return nil, ErrImageSize
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	if !(opts.LineWidth > 0) {
		return dst, nil
	}

	ctm := fit(g, innerW, innerH, m, float64(h))
	r := NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	r.CTM = ctm
	r.Width = opts.LineWidth / ctm[0]
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound
	r.Stroke(segmentPath(g), func(y, xMin int, coverage []float32) {
		row := dst.Pix[y*dst.Stride+xMin:]
		for i, c := range coverage {
			row[i] = uint8(c*255 + 0.5)
		}
	})
	return dst, nil
}

// WritePNG renders g and writes the image in PNG format.
func WritePNG(w io.Writer, g *segnet.GraphInput, opts *Options) error {
	img, err := Render(g, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// fit returns the transformation from graph coordinates to device space.
func fit(g *segnet.GraphInput, innerW, innerH, margin, height float64) matrix.Matrix {
	bbox := g.BBox()
	bw := bbox.URx - bbox.LLx
	bh := bbox.URy - bbox.LLy

	scale := math.Inf(1)
	if bw > 0 {
		scale = innerW / bw
	}
	if bh > 0 {
		scale = min(scale, innerH/bh)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	// centre the graph inside the margin
	offX := margin + (innerW-scale*bw)/2
	offY := margin + (innerH-scale*bh)/2
	return matrix.Matrix{
		scale, 0,
		0, -scale,
		offX - scale*bbox.LLx, height - offY + scale*bbox.LLy,
	}
}

// segmentPath returns the segments of g as a path.  Consecutive segments
// which share an end point are joined into one subpath, and a subpath
// which returns to its start is closed.
func segmentPath(g *segnet.GraphInput) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2
		var start, cur vec.Vec2
		open := false
		closeIfLoop := func() bool {
			if open && cur == start {
				return yield(path.CmdClose, nil)
			}
			return true
		}
		for s := range g.Segments() {
			if !open || s.A != cur {
				if !closeIfLoop() {
					return
				}
				start = s.A
				buf[0] = s.A
				if !yield(path.CmdMoveTo, buf[:]) {
					return
				}
				open = true
			}
			cur = s.B
			buf[0] = s.B
			if !yield(path.CmdLineTo, buf[:]) {
				return
			}
		}
		closeIfLoop()
	}
}

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

// Package bake writes prepared segment networks into documents.
//
// Baking is a side effect performed for the caller after Prepare has
// succeeded.  Failures are reported to the caller but never affect the
// prepared graph.
package bake

import (
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/segnet"
)

// Baker writes the edges of a graph to a document layer.
type Baker interface {
	// Bake writes the edges of g.  The returned IDs are in edge order and
	// are computed with segnet.EdgeID, using the given tolerance.
	Bake(g *segnet.GraphInput, layer string, tol float64) (*Result, error)
}

// Result describes a baked graph.
type Result struct {
	Layer string
	IDs   []string
}

// ErrNoGraph is returned when there is nothing to bake.
var ErrNoGraph = errors.New("bake: no graph")

// PDFBaker writes the edges to a single-page PDF file.
type PDFBaker struct {
	// Path is the output file name.
	Path string

	// Margin is the white space around the bounding box, in PDF units.
	Margin float64

	// LineWidth is the stroke width.  Zero selects a hairline.
	LineWidth float64
}

// Bake implements the Baker interface.
func (b *PDFBaker) Bake(g *segnet.GraphInput, layer string, tol float64) (*Result, error) {
	if g == nil || g.NumEdges() == 0 {
		return nil, ErrNoGraph
	}
	bbox := g.BBox()
	m := max(b.Margin, 0)
	paper := &pdf.Rectangle{
		URx: bbox.URx - bbox.LLx + 2*m,
		URy: bbox.URy - bbox.LLy + 2*m,
	}
	// single points and straight lines still need a visible page
	paper.URx = max(paper.URx, 1)
	paper.URy = max(paper.URy, 1)

	page, err := document.CreateSinglePage(b.Path, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, fmt.Errorf("bake: %w", err)
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, paper.URx, paper.URy)
	page.Fill()

	page.Transform(matrix.Matrix{1, 0, 0, 1, m - bbox.LLx, m - bbox.LLy})
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(b.LineWidth)

	res := &Result{Layer: layer}
	for s := range g.Segments() {
		page.MoveTo(s.A.X, s.A.Y)
		page.LineTo(s.B.X, s.B.Y)
		res.IDs = append(res.IDs, segnet.EdgeID(s.A, s.B, tol))
	}
	page.Stroke()

	if err := page.Close(); err != nil {
		return nil, fmt.Errorf("bake: %w", err)
	}
	return res, nil
}

// Try runs b and logs failures instead of returning them.  It returns
// nil if baking failed.
func Try(b Baker, g *segnet.GraphInput, layer string, tol float64) *Result {
	res, err := b.Bake(g, layer, tol)
	if err != nil {
		segnet.Logger().Warn("bake failed",
			slog.String("layer", layer),
			slog.Any("err", err))
		return nil
	}
	return res
}

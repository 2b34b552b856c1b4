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

// Command genpdf bakes the prepared test cases into PDF files and renders
// matching PNG previews, for visual inspection.
package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/segnet"
	"seehuhn.de/go/segnet/bake"
	"seehuhn.de/go/segnet/preview"
	"seehuhn.de/go/segnet/testcases"
)

const refDir = "testdata/baked"

func main() {
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			g, _, err := segnet.Prepare(context.Background(), tc.Curves, tc.Options())
			if errors.Is(err, segnet.ErrInputEmpty) {
				continue
			} else if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			b := &bake.PDFBaker{Path: pdfPath, Margin: 10, LineWidth: 0.5}
			if _, err := b.Bake(g, name, tc.Tolerance); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			if err := writePNG(g, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func writePNG(g *segnet.GraphInput, pngPath string) error {
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	err = preview.WritePNG(f, g, &preview.Options{Width: 256, Height: 256, Margin: 8, LineWidth: 1})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

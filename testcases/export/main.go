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

// Command export writes the test case definitions, together with the
// prepared graphs, to JSON.
// Run from the segnet module root directory.
package main

import (
	"context"
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/segnet"
	"seehuhn.de/go/segnet/internal/curvefile"
	"seehuhn.de/go/segnet/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name     string              `json:"name"`
	Document *curvefile.Document `json:"document"`
	Graph    *segnet.GraphInput  `json:"graph,omitempty"`
	Stats    segnet.Stats        `json:"stats"`
	Error    string              `json:"error,omitempty"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	tol := tc.Tolerance
	doc := &curvefile.Document{
		Tolerance:      &tol,
		MergeCollinear: &tc.MergeCollinear,
		BuildIndices:   &tc.BuildIndices,
		Curves:         curvefile.FromCurves(tc.Curves),
	}
	jtc := jsonTestCase{
		Name:     category + "_" + tc.Name,
		Document: doc,
	}

	g, rep, err := segnet.Prepare(context.Background(), tc.Curves, tc.Options())
	jtc.Stats = rep.Stats
	if err != nil {
		jtc.Error = err.Error()
	} else {
		jtc.Graph = g
	}
	return jtc
}

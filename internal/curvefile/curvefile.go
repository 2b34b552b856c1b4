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

// Package curvefile reads and writes curve documents, the JSON input
// format of the segnet command line tool and HTTP service.
//
// A document lists the curves together with optional pipeline settings:
//
//	{
//	  "tolerance": 0.01,
//	  "curves": [
//	    {"type": "line", "from": [0, 0], "to": [1, 0]},
//	    {"type": "polyline", "points": [[0, 0], [1, 1], [2, 1]]},
//	    {"type": "path", "path": [
//	      {"cmd": "M", "pts": [[0, 0]]},
//	      {"cmd": "C", "pts": [[1, 2], [3, 2], [4, 0]]},
//	      {"cmd": "Z"}
//	    ]}
//	  ]
//	}
//
// Documents are validated against an embedded JSON schema before
// decoding.
package curvefile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/segnet"
)

//go:embed schema.json
var schemaData []byte

const schemaURL = "https://seehuhn.de/go/segnet/curves.schema.json"

var (
	once    sync.Once
	schema  *jsonschema.Schema
	loadErr error
)

func load() {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaData)); err != nil {
		loadErr = err
		return
	}
	schema, loadErr = c.Compile(schemaURL)
}

// ErrInvalid is returned for documents which do not match the schema or
// which contain path commands with the wrong number of points.
var ErrInvalid = errors.New("curvefile: invalid document")

// Document is a curve document.
type Document struct {
	Tolerance      *float64 `json:"tolerance,omitempty"`
	MergeCollinear *bool    `json:"mergeCollinear,omitempty"`
	BuildIndices   *bool    `json:"buildIndices,omitempty"`
	BakeLayer      string   `json:"bakeLayer,omitempty"`
	Curves         []Curve  `json:"curves"`
}

// Curve is the JSON form of a segnet.Curve.
type Curve struct {
	Type   string        `json:"type"`
	From   *Point        `json:"from,omitempty"`
	To     *Point        `json:"to,omitempty"`
	Points []Point       `json:"points,omitempty"`
	Path   []PathSegment `json:"path,omitempty"`
}

// Point is an x, y pair.
type Point [2]float64

// PathSegment is one command of a freeform path.
type PathSegment struct {
	Cmd string  `json:"cmd"`
	Pts []Point `json:"pts,omitempty"`
}

// Validate checks raw JSON data against the document schema.
func Validate(data []byte) error {
	once.Do(load)
	if loadErr != nil {
		return loadErr
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Decode validates and decodes a document.
func Decode(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return doc, nil
}

// Read reads, validates and decodes a document.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Options applies the settings of the document to a copy of base.
// If base is nil, segnet.DefaultOptions is used.
func (doc *Document) Options(base *segnet.Options) *segnet.Options {
	var opts segnet.Options
	if base != nil {
		opts = *base
	} else {
		opts = *segnet.DefaultOptions()
	}
	if doc.Tolerance != nil {
		opts.Tolerance = *doc.Tolerance
	}
	if doc.MergeCollinear != nil {
		opts.MergeCollinear = *doc.MergeCollinear
	}
	if doc.BuildIndices != nil {
		opts.BuildIndices = *doc.BuildIndices
	}
	if doc.BakeLayer != "" {
		opts.BakeLayer = doc.BakeLayer
	}
	return &opts
}

// SegnetCurves converts the document curves.
func (doc *Document) SegnetCurves() ([]segnet.Curve, error) {
	res := make([]segnet.Curve, 0, len(doc.Curves))
	for i, c := range doc.Curves {
		sc, err := c.toSegnet()
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		res = append(res, sc)
	}
	return res, nil
}

func (c Curve) toSegnet() (segnet.Curve, error) {
	switch c.Type {
	case "line":
		if c.From == nil || c.To == nil {
			return nil, fmt.Errorf("%w: line without end points", ErrInvalid)
		}
		return segnet.Line{From: c.From.vec(), To: c.To.vec()}, nil
	case "polyline":
		pl := make(segnet.Polyline, len(c.Points))
		for i, p := range c.Points {
			pl[i] = p.vec()
		}
		return pl, nil
	case "path":
		p, err := decodePath(c.Path)
		if err != nil {
			return nil, err
		}
		return segnet.Freeform{Path: p}, nil
	}
	return nil, fmt.Errorf("%w: unknown curve type %q", ErrInvalid, c.Type)
}

var cmdPoints = map[string]struct {
	cmd path.Command
	n   int
}{
	"M": {path.CmdMoveTo, 1},
	"L": {path.CmdLineTo, 1},
	"Q": {path.CmdQuadTo, 2},
	"C": {path.CmdCubeTo, 3},
	"Z": {path.CmdClose, 0},
}

func decodePath(segs []PathSegment) (*path.Data, error) {
	p := &path.Data{}
	for _, seg := range segs {
		info, ok := cmdPoints[seg.Cmd]
		if !ok {
			return nil, fmt.Errorf("%w: unknown path command %q", ErrInvalid, seg.Cmd)
		}
		if len(seg.Pts) != info.n {
			return nil, fmt.Errorf("%w: path command %s needs %d points, got %d",
				ErrInvalid, seg.Cmd, info.n, len(seg.Pts))
		}
		p.Cmds = append(p.Cmds, info.cmd)
		for _, pt := range seg.Pts {
			p.Coords = append(p.Coords, pt.vec())
		}
	}
	return p, nil
}

// FromCurves converts segnet curves into their document form.
// Curves of unknown type, empty polylines and empty paths are omitted.
func FromCurves(curves []segnet.Curve) []Curve {
	var res []Curve
	for _, c := range curves {
		switch c := c.(type) {
		case segnet.Line:
			from, to := point(c.From), point(c.To)
			res = append(res, Curve{Type: "line", From: &from, To: &to})
		case segnet.Polyline:
			if len(c) == 0 {
				continue
			}
			pts := make([]Point, len(c))
			for i, p := range c {
				pts[i] = point(p)
			}
			res = append(res, Curve{Type: "polyline", Points: pts})
		case segnet.Freeform:
			if c.Path == nil || len(c.Path.Cmds) == 0 {
				continue
			}
			res = append(res, Curve{Type: "path", Path: encodePath(c.Path)})
		}
	}
	return res
}

func encodePath(p *path.Data) []PathSegment {
	var segs []PathSegment
	coordIdx := 0
	for _, cmd := range p.Cmds {
		var seg PathSegment
		n := 0
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd, n = "M", 1
		case path.CmdLineTo:
			seg.Cmd, n = "L", 1
		case path.CmdQuadTo:
			seg.Cmd, n = "Q", 2
		case path.CmdCubeTo:
			seg.Cmd, n = "C", 3
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for range n {
			seg.Pts = append(seg.Pts, point(p.Coords[coordIdx]))
			coordIdx++
		}
		segs = append(segs, seg)
	}
	return segs
}

func point(v vec.Vec2) Point {
	return Point{v.X, v.Y}
}

func (p Point) vec() vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[1]}
}

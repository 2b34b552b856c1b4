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

// Command segnet prepares curve documents for network analysis.
//
// Usage:
//
//	segnet [flags] prepare [file]    write the prepared graph as JSON
//	segnet [flags] bake [file]       write the prepared graph to a PDF file
//
// The bake command needs an output file and a non-blank layer name,
// given by -layer, $SEGNET_BAKE_LAYER or the document.
//	segnet [flags] preview [file]    render the prepared graph to a PNG file
//
// The curve document is read from file, or from standard input if no
// file is given.  Settings in the document override the flags.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"seehuhn.de/go/segnet"
	"seehuhn.de/go/segnet/bake"
	"seehuhn.de/go/segnet/cache"
	"seehuhn.de/go/segnet/internal/config"
	"seehuhn.de/go/segnet/internal/curvefile"
	"seehuhn.de/go/segnet/preview"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "segnet:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("segnet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	output := fs.String("o", "", "output file (default: standard output)")
	useCache := fs.Bool("cache", false, "look up and store results in the cache database")
	previous := fs.String("previous", "", "hash of the previous result")
	width := fs.Int("width", preview.DefaultOptions.Width, fmt.Sprintf("preview width in pixels, at most %d", preview.MaxSize))
	height := fs.Int("height", preview.DefaultOptions.Height, fmt.Sprintf("preview height in pixels, at most %d", preview.MaxSize))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	segnet.SetLogger(cfg.NewLogger(stderr))

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errors.New("expected a command and at most one input file")
	}
	cmd := fs.Arg(0)
	switch cmd {
	case "prepare", "bake", "preview":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	in := stdin
	if fs.NArg() == 2 {
		f, err := os.Open(fs.Arg(1))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	doc, err := curvefile.Read(in)
	if err != nil {
		return err
	}
	curves, err := doc.SegnetCurves()
	if err != nil {
		return err
	}
	opts := doc.Options(cfg.Options())
	opts.PreviousHash = *previous
	if cmd == "bake" {
		if *output == "" {
			return errors.New("bake needs an output file (-o)")
		}
		if strings.TrimSpace(opts.BakeLayer) == "" {
			return errors.New("bake needs a layer name (-layer)")
		}
	}

	var g *segnet.GraphInput
	var rep *segnet.Report
	if *useCache {
		var store *cache.Store
		store, err = cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		g, rep, err = store.PrepareCached(ctx, curves, opts)
	} else {
		g, rep, err = segnet.Prepare(ctx, curves, opts)
	}
	fmt.Fprintln(stderr, rep)
	if err != nil {
		return err
	}
	if rep.Unchanged {
		fmt.Fprintln(stderr, "geometry unchanged")
	}

	switch cmd {
	case "prepare":
		return withOutput(*output, stdout, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		})

	case "bake":
		b := &bake.PDFBaker{Path: *output, Margin: 10}
		res := bake.Try(b, g, opts.BakeLayer, opts.Tolerance)
		if res != nil {
			fmt.Fprintf(stderr, "baked %d edges to layer %q\n", len(res.IDs), res.Layer)
		}
		return nil

	default: // preview
		popts := *preview.DefaultOptions
		popts.Width, popts.Height = *width, *height
		return withOutput(*output, stdout, func(w io.Writer) error {
			return preview.WritePNG(w, g, &popts)
		})
	}
}

func withOutput(name string, stdout io.Writer, write func(io.Writer) error) error {
	if name == "" {
		return write(stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

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

// Package server exposes the preparation pipeline over HTTP.
//
// Routes:
//
//	GET  /health                     liveness check
//	POST /prepare                    prepare a curve document
//	GET  /graphs/{hash}              fetch a cached graph
//	GET  /graphs/{hash}/preview.png  render a cached graph
//
// Hashes contain base64 characters and must be path-escaped in URLs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"seehuhn.de/go/segnet"
	"seehuhn.de/go/segnet/cache"
	"seehuhn.de/go/segnet/internal/curvefile"
	"seehuhn.de/go/segnet/preview"
)

// maxBody limits the size of request documents.
const maxBody = 64 << 20

// RequestIDHeader carries the request ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

// Server handles the HTTP requests.
type Server struct {
	store *cache.Store
	base  *segnet.Options
	log   *slog.Logger
}

// New returns a server.  The store may be nil, in which case nothing is
// cached and the /graphs routes report 404.  Base holds the pipeline
// settings used where a document does not override them.
func New(store *cache.Store, base *segnet.Options, log *slog.Logger) *Server {
	if base == nil {
		base = segnet.DefaultOptions()
	}
	if log == nil {
		log = segnet.Logger()
	}
	return &Server{store: store, base: base, log: log}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"service":"segnet"}`))
	})
	r.Post("/prepare", s.handlePrepare)
	r.Get("/graphs/{hash}", s.handleGraph)
	r.Get("/graphs/{hash}/preview.png", s.handlePreview)
	return r
}

type ctxKey struct{}

// requestID assigns a request ID, unless the client supplied one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the request ID stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			slog.String("id", RequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)))
	})
}

// PrepareResponse is the body of a successful /prepare response.
type PrepareResponse struct {
	RequestID string             `json:"requestId"`
	Hash      string             `json:"hash"`
	Unchanged bool               `json:"unchanged"`
	Cached    bool               `json:"cached"`
	Report    ReportJSON         `json:"report"`
	Graph     *segnet.GraphInput `json:"graph,omitempty"`
}

// ReportJSON is the JSON form of a segnet.Report.
type ReportJSON struct {
	segnet.Stats
	Stage     string `json:"stage"`
	ElapsedMS int64  `json:"elapsedMs"`
	Info      string `json:"info"`
}

func reportJSON(rep *segnet.Report) ReportJSON {
	return ReportJSON{
		Stats:     rep.Stats,
		Stage:     rep.Final.String(),
		ElapsedMS: rep.Elapsed.Milliseconds(),
		Info:      rep.Info(),
	}
}

type errorResponse struct {
	RequestID string      `json:"requestId"`
	Error     string      `json:"error"`
	Report    *ReportJSON `json:"report,omitempty"`
}

// handlePrepare runs the pipeline on the posted curve document.
// The query parameter "previous" sets the previous hash and "graph=0"
// omits the buffers from the response.
func (s *Server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err, nil)
		return
	}
	doc, err := curvefile.Decode(data)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err, nil)
		return
	}
	curves, err := doc.SegnetCurves()
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err, nil)
		return
	}
	opts := doc.Options(s.base)
	opts.PreviousHash = r.URL.Query().Get("previous")

	g, rep, err := segnet.Prepare(ctx, curves, opts)
	if err != nil {
		rj := reportJSON(rep)
		s.fail(w, r, statusFor(err), err, &rj)
		return
	}

	resp := &PrepareResponse{
		RequestID: RequestID(ctx),
		Hash:      g.Hash(),
		Unchanged: rep.Unchanged,
		Report:    reportJSON(rep),
	}
	if s.store != nil {
		if ok, err := s.store.Has(ctx, g.Hash()); err == nil && ok {
			resp.Cached = true
		} else if err := s.store.Put(ctx, g); err != nil {
			s.log.Warn("cache store failed", slog.String("hash", g.Hash()), slog.Any("err", err))
		}
	}
	if v, err := strconv.ParseBool(r.URL.Query().Get("graph")); err != nil || v {
		resp.Graph = g
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*segnet.GraphInput, bool) {
	hash, err := url.PathUnescape(chi.URLParam(r, "hash"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err, nil)
		return nil, false
	}
	if s.store == nil {
		s.fail(w, r, http.StatusNotFound, cache.ErrNotFound, nil)
		return nil, false
	}
	g, err := s.store.Get(r.Context(), hash)
	if errors.Is(err, cache.ErrNotFound) {
		s.fail(w, r, http.StatusNotFound, err, nil)
		return nil, false
	} else if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err, nil)
		return nil, false
	}
	return g, true
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// handlePreview renders a cached graph.  The query parameters "w" and
// "h" set the image size.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts := *preview.DefaultOptions
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("w")); err == nil {
		opts.Width = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil {
		opts.Height = v
	}
	img, err := preview.Render(g, &opts)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err, nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Warn("preview failed", slog.Any("err", err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, segnet.ErrInvalidTolerance):
		return http.StatusBadRequest
	case errors.Is(err, segnet.ErrInputEmpty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, segnet.ErrCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error, rep *ReportJSON) {
	id := RequestID(r.Context())
	s.log.Debug("request failed", slog.String("id", id), slog.Any("err", err))
	writeJSON(w, status, errorResponse{RequestID: id, Error: err.Error(), Report: rep})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

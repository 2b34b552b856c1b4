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

// Command segnetd serves the preparation pipeline over HTTP.
//
// The daemon is configured through the same sources as the segnet
// command: a YAML file named by $SEGNET_CONFIG, SEGNET_* environment
// variables, a .env file and command line flags.  Prepared graphs are
// cached in an SQLite database.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seehuhn.de/go/segnet"
	"seehuhn.de/go/segnet/cache"
	"seehuhn.de/go/segnet/internal/config"
	"seehuhn.de/go/segnet/internal/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("loading configuration", "err", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "cache database file")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stderr)
	segnet.SetLogger(logger)

	if err := serve(cfg, logger); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(store, cfg.Options(), logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("segnetd listening", "addr", cfg.Addr, "cache", cfg.CachePath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

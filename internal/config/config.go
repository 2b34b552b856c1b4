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

// Package config loads the settings of the segnet commands.
//
// Settings are read in this order, later sources overriding earlier ones:
// built-in defaults, an optional YAML file, environment variables with
// prefix SEGNET_ (which may be set in a .env file), and finally command
// line flags registered with RegisterFlags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/segnet"
)

// Config holds the settings shared by the segnet commands.
type Config struct {
	Addr           string  `yaml:"addr"`
	CachePath      string  `yaml:"cache"`
	Tolerance      float64 `yaml:"tolerance"`
	MergeCollinear bool    `yaml:"merge_collinear"`
	BuildIndices   bool    `yaml:"build_indices"`
	BakeLayer      string  `yaml:"bake_layer"`
	LogLevel       string  `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:         ":8082",
		CachePath:    "segnet.db",
		Tolerance:    segnet.DefaultTolerance,
		BuildIndices: true,
		LogLevel:     "info",
	}
}

// Load reads the configuration.  The given .env files are loaded into the
// environment first; with no arguments, ".env" is tried.  Missing .env
// files are ignored.  The YAML file is taken from yamlPath or, if that is
// empty, from $SEGNET_CONFIG.
func Load(yamlPath string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: %w", err)
	}

	c := Default()
	if yamlPath == "" {
		yamlPath = os.Getenv("SEGNET_CONFIG")
	}
	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config: %s: %w", yamlPath, err)
		}
	}

	if err := c.fromEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) fromEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str("SEGNET_ADDR", &c.Addr)
	str("SEGNET_CACHE", &c.CachePath)
	str("SEGNET_BAKE_LAYER", &c.BakeLayer)
	str("SEGNET_LOG_LEVEL", &c.LogLevel)

	if v := os.Getenv("SEGNET_TOLERANCE"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: SEGNET_TOLERANCE: %w", err)
		}
		c.Tolerance = x
	}
	for key, dst := range map[string]*bool{
		"SEGNET_MERGE_COLLINEAR": &c.MergeCollinear,
		"SEGNET_BUILD_INDICES":   &c.BuildIndices,
	} {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

// RegisterFlags adds flags for the pipeline settings to fs, using the
// current values as defaults.
func (c *Config) RegisterFlags(set *flag.FlagSet) {
	set.Float64Var(&c.Tolerance, "tol", c.Tolerance, "snapping tolerance")
	set.BoolVar(&c.MergeCollinear, "merge", c.MergeCollinear, "merge collinear edges")
	set.BoolVar(&c.BuildIndices, "indexed", c.BuildIndices, "write the indexed layout")
	set.StringVar(&c.BakeLayer, "layer", c.BakeLayer, "document layer for baked edges")
	set.StringVar(&c.LogLevel, "log", c.LogLevel, "log level (debug, info, warn, error)")
}

// Options returns the pipeline options described by c.
func (c *Config) Options() *segnet.Options {
	return &segnet.Options{
		Tolerance:      c.Tolerance,
		MergeCollinear: c.MergeCollinear,
		BuildIndices:   c.BuildIndices,
		BakeLayer:      c.BakeLayer,
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at the configured level.
// An invalid level selects slog.LevelInfo.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

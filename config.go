package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const previewCoreName = "preview"

type Config struct {
	// Assets is a directory or an http(s) base URL.
	Assets string
	// Core is a path to a wasm core module, or "preview".
	Core     string
	Scale    int
	Title    string
	LogLevel string
	// Snapshot, when set, renders the first frame to this PNG file
	// instead of opening a window.
	Snapshot string
}

// ParseConfig reads flags from args. UTK_ASSETS, UTK_CORE and
// UTK_LOG_LEVEL supply the defaults for the matching flags.
func ParseConfig(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("utk-level-editor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Assets, "assets", envOr(getenv, "UTK_ASSETS", "assets"), "asset directory or http(s) URL")
	fs.StringVar(&cfg.Core, "core", envOr(getenv, "UTK_CORE", previewCoreName), "wasm core module path, or \"preview\"")
	fs.IntVar(&cfg.Scale, "scale", 3, "initial window scale")
	fs.StringVar(&cfg.Title, "title", "UTK level editor", "window title")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr(getenv, "UTK_LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&cfg.Snapshot, "snapshot", "", "write the first frame to a PNG file and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func (cfg *Config) validate() error {
	if cfg.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", cfg.Scale)
	}
	if cfg.Assets == "" {
		return errors.New("no asset location given")
	}
	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if !cfg.UsePreviewCore() {
		core, err := homedir.Expand(cfg.Core)
		if err != nil {
			return err
		}
		cfg.Core = core
	}
	if cfg.Snapshot != "" {
		snapshot, err := homedir.Expand(cfg.Snapshot)
		if err != nil {
			return err
		}
		cfg.Snapshot = snapshot
	}
	return nil
}

func (cfg *Config) UsePreviewCore() bool {
	return cfg.Core == "" || cfg.Core == previewCoreName
}

func (cfg *Config) Backend() (CoreBackend, error) {
	if cfg.UsePreviewCore() {
		return PreviewBackend{}, nil
	}
	return LoadWasmBackend(cfg.Core)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
)

func run(ctx context.Context, cfg *Config) error {
	if err := InitLogger(cfg.LogLevel); err != nil {
		return err
	}
	backend, err := cfg.Backend()
	if err != nil {
		return err
	}
	origin, err := OpenOrigin(cfg.Assets)
	if err != nil {
		return err
	}
	logger.Info("starting", "assets", cfg.Assets, "core", cfg.Core)
	if cfg.Snapshot != "" {
		return snapshot(ctx, backend, origin, cfg.Snapshot)
	}
	return WithGL(cfg.Title, CreateApp(ctx, backend, origin, cfg.Scale))
}

// snapshot renders the first frame without a window.
func snapshot(ctx context.Context, backend CoreBackend, origin ResourceOrigin, path string) error {
	clock := NewFrameClock()
	surface := NewImageSurface()
	harness := NewHarness(backend, surface, clock)
	if err := harness.Start(ctx, origin); err != nil {
		return err
	}
	defer harness.Close()
	clock.Tick()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := surface.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", path, "frames", harness.Frames())
	return nil
}

func main() {
	cfg, err := ParseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: utk-level-editor [-assets DIR|URL] [-core preview|FILE.wasm] [-scale N] [-snapshot FILE.png] [-log-level LEVEL]")
		log.Fatalf("%v\n", err)
	}
	if err := run(context.Background(), cfg); err != nil {
		logger.Error("fatal", "error", err)
		log.Fatalf("%v\n", err)
	}
}

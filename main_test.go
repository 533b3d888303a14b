package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := snapshot(context.Background(), PreviewBackend{}, FSOrigin{FS: testAssets(t)}, path); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != previewScreenWidth || b.Dy() != previewScreenHeight {
		t.Errorf("snapshot bounds %v", b)
	}
	if r, g, b, _ := img.At(5, 5).RGBA(); r != 0 || g>>8 != 128 || b != 0 {
		t.Errorf("floor pixel = %v", img.At(5, 5))
	}
}

func TestRun_Snapshot(t *testing.T) {
	saved := logger
	defer func() { logger = saved }()

	dir := t.TempDir()
	for name, file := range testAssets(t) {
		if err := os.WriteFile(filepath.Join(dir, name), file.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(dir, "out.png")
	cfg, err := ParseConfig([]string{"-assets", dir, "-snapshot", out, "-log-level", "error"}, func(string) string { return "" })
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestRun_MissingAssets(t *testing.T) {
	saved := logger
	defer func() { logger = saved }()

	cfg, err := ParseConfig([]string{"-assets", filepath.Join(t.TempDir(), "none"), "-snapshot", "x.png", "-log-level", "error"}, func(string) string { return "" })
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if err := run(context.Background(), cfg); err == nil {
		t.Error("run succeeded without an asset directory")
	}
}

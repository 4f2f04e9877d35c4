package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tunnelrunner/internal/scene"
)

func TestRunBatchWritesEveryScene(t *testing.T) {
	f, err := scene.Parse([]byte(`
width: 32
height: 24
texture_size: 16
scale: 2
scenes:
  - {name: a}
  - {name: b, rotation: 7, color: cyan}
  - {name: c, mode: flat, format: png}
  - {name: d, translation: 99}
`))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	results, err := runBatch(f, dir, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: %v", r.Name, r.Error)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"a.webp", "b.webp", "c.png", "d.webp"}, names); diff != "" {
		t.Errorf("output files (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(dir, "c.png"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("c.png is %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestRunBatchReportsWriteFailures(t *testing.T) {
	f, err := scene.Parse([]byte("width: 8\nheight: 8\ntexture_size: 8\nscenes: [{name: a}]"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	// A directory where the output file should go makes the create fail.
	if err := os.Mkdir(filepath.Join(dir, "a.webp"), 0o755); err != nil {
		t.Fatal(err)
	}
	results, err := runBatch(f, dir, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Error == nil {
		t.Error("expected a write error")
	}
}

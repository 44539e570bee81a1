package app

import (
	"flag"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"mapgen/internal/pipeline"
)

func smallMap(t *testing.T) *pipeline.Map {
	t.Helper()
	cfg := pipeline.DefaultConfig()
	cfg.Size = 48
	cfg.Points = 16
	cfg.Boundary.RiverPoints = 8
	cfg.Scatter.ObjectCount = 100
	m, err := pipeline.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return m
}

func TestParseLayer(t *testing.T) {
	for _, l := range Layers() {
		got, err := ParseLayer(l.String())
		if err != nil || got != l {
			t.Fatalf("round trip of %v gave %v (%v)", l, got, err)
		}
	}
	if got, err := ParseLayer("HEIGHT"); err != nil || got != LayerHeight {
		t.Fatalf("expected case-insensitive match, got %v (%v)", got, err)
	}
	if _, err := ParseLayer("lava"); err == nil {
		t.Fatal("expected error for unknown layer")
	}
}

func TestComposeEveryLayer(t *testing.T) {
	m := smallMap(t)
	for _, l := range Layers() {
		img := Compose(m, l, Overlays{})
		if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
			t.Fatalf("layer %v rendered at %v", l, b)
		}
	}
}

func TestComposeOverlays(t *testing.T) {
	m := smallMap(t)
	img := Compose(m, LayerColor, Overlays{Boundary: true})
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			if m.Boundary.At(x, y) && img.RGBAAt(x, y) != boundaryColor {
				t.Fatalf("boundary pixel (%d,%d) not overlaid", x, y)
			}
		}
	}

	img = Compose(m, LayerColor, Overlays{Trees: true})
	for _, p := range m.Trees {
		if img.RGBAAt(p.X, p.Y) != treeColor {
			t.Fatalf("tree at %v not marked", p)
		}
	}

	plain := Compose(m, LayerBoundary, Overlays{})
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			want := color.RGBA{A: 255}
			if m.Boundary.At(x, y) {
				want = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			if plain.RGBAAt(x, y) != want {
				t.Fatalf("boundary layer pixel (%d,%d) = %v", x, y, plain.RGBAAt(x, y))
			}
		}
	}
}

func TestKVList(t *testing.T) {
	var l KVList
	if err := l.Set("size"); err == nil {
		t.Fatal("expected error without '='")
	}
	for _, kv := range []string{"size=32", " seed = 7", "size=64"} {
		if err := l.Set(kv); err != nil {
			t.Fatalf("set %q: %v", kv, err)
		}
	}
	m := l.Map()
	if m["size"] != "64" || m["seed"] != "7" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestGenerationFlagsResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(`{"size": 96, "points": 40}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var g GenerationFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	g.Bind(fs)
	if err := fs.Parse([]string{"-config", path, "-set", "points=20"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := g.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Size != 96 || cfg.Points != 20 {
		t.Fatalf("expected size 96 and points 20, got %d and %d", cfg.Size, cfg.Points)
	}

	g.Set = KVList{"size=-1"}
	g.ConfigPath = ""
	if _, err := g.Resolve(); err == nil {
		t.Fatal("expected validation error for negative size")
	}
}

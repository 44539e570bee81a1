package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"mapgen/internal/app"
	"mapgen/internal/core"
	"mapgen/internal/pipeline"
	"mapgen/internal/render"
	"mapgen/internal/report"
)

func main() {
	var gen app.GenerationFlags
	gen.Bind(flag.CommandLine)
	out := flag.String("out", "map.png", "output PNG path")
	hist := flag.String("hist", "", "optional height histogram image path")
	overlays := flag.String("overlay", "", "comma-separated overlays: boundary, trees, rivers")
	params := flag.Bool("params", false, "print the resolved parameters and exit")
	verbose := flag.Bool("v", false, "log stage timings")
	layerName := flag.String("layer", app.LayerColor.String(), "layer to export: color, height, biome, boundary, rivers, cells")
	scale := flag.Int("scale", 1, "integer upscaling factor")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := gen.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *params {
		printParams(cfg)
		return
	}
	layer, err := app.ParseLayer(*layerName)
	if err != nil {
		log.Fatal(err)
	}
	ov, err := parseOverlays(*overlays)
	if err != nil {
		log.Fatal(err)
	}

	m, err := pipeline.Generate(cfg)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	img := render.Scale(app.Compose(m, layer, ov), *scale)
	if err := writePNG(*out, img); err != nil {
		log.Fatal(err)
	}
	if *hist != "" {
		if err := report.HeightHistogram(m.Height, m.Land, 64, *hist); err != nil {
			log.Fatal(err)
		}
	}

	s := m.Stats
	fmt.Printf("Wrote %s (%s layer, %dx%d): %d cells, land %.1f%%, %d river pixels, %d trees, %s\n",
		*out, layer, cfg.Size, cfg.Size, s.Cells, 100*s.LandFraction, s.RiverPixels, s.Trees, s.Elapsed.Round(time.Millisecond))
	for _, st := range s.Stages {
		fmt.Printf("  %-8s %s\n", st.Name, st.Elapsed)
	}
}

func parseOverlays(list string) (app.Overlays, error) {
	var o app.Overlays
	if list == "" {
		return o, nil
	}
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(name) {
		case "boundary":
			o.Boundary = true
		case "trees":
			o.Trees = true
		case "rivers":
			o.Rivers = true
		default:
			return o, fmt.Errorf("unknown overlay %q", name)
		}
	}
	return o, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func printParams(cfg pipeline.Config) {
	fmt.Println("Parameters:")
	for _, g := range cfg.Parameters().Groups {
		fmt.Printf("  [%s]\n", g.Name)
		for _, p := range g.Params {
			fmt.Printf("    %s=%s\n", p.Key, p.Value)
		}
	}
}

//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"mapgen/internal/app"
	"mapgen/internal/core"
	"mapgen/internal/pipeline"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	gen, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	layer, err := app.ParseLayer(cfg.Layer)
	if err != nil {
		log.Fatal(err)
	}
	m, err := pipeline.Generate(gen)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	game := app.New(m, layer, cfg.Scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("mapgen: seed " + m.Config.Parameters().Map()["seed"])
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

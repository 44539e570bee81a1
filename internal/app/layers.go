package app

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"mapgen/internal/pipeline"
	"mapgen/internal/render"
	"mapgen/internal/ui"
)

// Layer selects which grid of a map is rendered.
type Layer int

const (
	LayerColor Layer = iota
	LayerHeight
	LayerBiome
	LayerBoundary
	LayerRivers
	LayerCells
)

var layerNames = []string{"color", "height", "biome", "boundary", "rivers", "cells"}

// Layers lists every layer in key order.
func Layers() []Layer {
	out := make([]Layer, len(layerNames))
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return fmt.Sprintf("layer(%d)", int(l))
	}
	return layerNames[l]
}

// ParseLayer resolves a layer by name.
func ParseLayer(name string) (Layer, error) {
	for i, n := range layerNames {
		if strings.EqualFold(n, name) {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q (want one of %s)", name, strings.Join(layerNames, ", "))
}

// Overlays selects the markers drawn over a layer.
type Overlays = ui.Toggles

var (
	boundaryColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	riverColor    = color.RGBA{R: 45, G: 95, B: 160, A: 255}
	treeColor     = color.RGBA{R: 20, G: 70, B: 30, A: 255}
)

// Compose renders layer l of m with the requested overlays.
func Compose(m *pipeline.Map, l Layer, o Overlays) *image.RGBA {
	var img *image.RGBA
	switch l {
	case LayerHeight:
		img = toRGBA(render.Gray(m.Height))
	case LayerBiome:
		img = render.Palette(m.Biomes, m.Palette())
	case LayerBoundary:
		img = render.Binary(m.Boundary, color.White, color.Black)
	case LayerRivers:
		img = render.Binary(m.Rivers, riverColor, color.Black)
	case LayerCells:
		img = render.Cells(m.Cells)
	default:
		img = render.RGBA(m.Color)
	}
	if o.Rivers {
		render.Overlay(img, m.Rivers, riverColor)
	}
	if o.Boundary {
		render.Overlay(img, m.Boundary, boundaryColor)
	}
	if o.Trees {
		render.Mark(img, m.Trees, treeColor)
	}
	return img
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

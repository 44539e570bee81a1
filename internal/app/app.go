//go:build ebiten

package app

import (
	"fmt"

	"mapgen/internal/pipeline"
	"mapgen/internal/render"
	"mapgen/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the parameter panel in screen pixels.
const hudWidth = 280

var layerKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// Game adapts a generated map to the ebiten.Game interface. It only displays
// the map; nothing is regenerated.
type Game struct {
	m       *pipeline.Map
	painter *render.Painter
	overlay *ui.Overlay
	hud     *ui.HUD

	layer Layer
	shown Overlays
	dirty bool
	scale int
}

// New constructs a Game showing layer l of m.
func New(m *pipeline.Map, l Layer, scale int) *Game {
	if scale < 1 {
		scale = 1
	}
	return &Game{
		m:       m,
		painter: render.NewPainter(m.Config.Size, m.Config.Size),
		overlay: ui.NewOverlay(),
		hud:     ui.NewHUD(fmt.Sprintf("seed %d  cells %d", m.Config.Seed, m.Stats.Cells), m.Config.Parameters(), hudWidth),
		layer:   l,
		dirty:   true,
		scale:   scale,
	}
}

// Update handles keyboard input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for i, k := range layerKeys {
		if i < len(layerNames) && inpututil.IsKeyJustPressed(k) && g.layer != Layer(i) {
			g.layer = Layer(i)
			g.dirty = true
		}
	}
	g.overlay.Update()
	shown := g.overlay.Toggles
	if shown != g.shown {
		g.shown = shown
		g.dirty = true
	}
	g.hud.SetStatus(g.layer.String(), g.overlay.Summary())
	return nil
}

// Draw renders the selected layer and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.painter.Upload(Compose(g.m, g.layer, g.shown))
		g.dirty = false
	}
	g.painter.Draw(screen, g.scale)
	side := g.m.Config.Size * g.scale
	g.hud.Draw(screen, side, side)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.m.Config.Size * g.scale
	return side + hudWidth, side
}

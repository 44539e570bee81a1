//go:build ebiten

package ui

import (
	"image/color"

	"mapgen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the read-only parameter panel to the right of the map view.
type HUD struct {
	title      string
	lines      []string
	status     []string
	width      int
	panel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD listing the parameters of snap.
func NewHUD(title string, snap core.ParameterSnapshot, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{title: title, lines: Lines(snap), width: width}
}

// SetStatus replaces the footer showing the current layer and overlays.
func (h *HUD) SetStatus(layer, overlays string) {
	if h == nil {
		return
	}
	h.status = append(h.status[:0], "layer: "+layer, "overlays: "+overlays)
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	y += infoSpacing
	for _, line := range h.lines {
		if y > height-len(h.status)*lineHeight-panelPadding {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		y += lineHeight
	}

	y = height - panelPadding - (len(h.status)-1)*lineHeight
	for _, line := range h.status {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	panelPadding   = 12
	lineHeight     = 15
	headerBaseline = 18
	infoSpacing    = 24
)

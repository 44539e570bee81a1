//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay tracks which markers are drawn over the map.
type Overlay struct {
	Toggles
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay { return &Overlay{} }

// Update flips toggles for the B, T and R keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.Flip('b')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.Flip('t')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		o.Flip('r')
	}
}

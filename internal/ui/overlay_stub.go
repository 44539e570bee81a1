//go:build !ebiten

package ui

// Overlay is a placeholder used when the ebiten build tag is absent.
type Overlay struct {
	Toggles
}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

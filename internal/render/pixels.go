// Package render converts generation grids into images.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"

	"mapgen/internal/core"
)

// RGBA converts a color grid, clamping channels to [0, 255].
func RGBA(g *core.ColorGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for i, px := range g.Cells() {
		base := i * 4
		img.Pix[base+0] = clampByte(px[0])
		img.Pix[base+1] = clampByte(px[1])
		img.Pix[base+2] = clampByte(px[2])
		img.Pix[base+3] = 0xff
	}
	return img
}

// Gray maps a scalar grid linearly from its [min, max] range to [0, 255]. A
// constant grid renders mid-gray.
func Gray(g *core.ScalarGrid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	vals := g.Cells()
	lo, hi := floats.Min(vals), floats.Max(vals)
	for i, v := range vals {
		if hi == lo {
			img.Pix[i] = 0x80
			continue
		}
		img.Pix[i] = uint8((v-lo)/(hi-lo)*255 + 0.5)
	}
	return img
}

// Binary renders true cells with on and false cells with off.
func Binary(m *core.Mask, on, off color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	fillBinaryRGBA(img.Pix, m.Cells(), on, off)
	return img
}

// Palette renders band indices through palette. Indices past the end use
// the last entry and negative indices the first.
func Palette(g *core.BandGrid, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	fillPaletteRGBA(img.Pix, g.Cells(), palette)
	return img
}

// Cells renders every cell id with a distinct pseudo-random color. Id 0
// renders black.
func Cells(g *core.CellGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for i, id := range g.Cells() {
		c := cellColor(id)
		base := i * 4
		img.Pix[base+0] = c.R
		img.Pix[base+1] = c.G
		img.Pix[base+2] = c.B
		img.Pix[base+3] = c.A
	}
	return img
}

// Overlay paints c over img wherever m is true.
func Overlay(img *image.RGBA, m *core.Mask, c color.Color) {
	for y := 0; y < m.H; y++ {
		for x, on := range m.Row(y) {
			if on {
				img.Set(x, y, c)
			}
		}
	}
}

// Mark paints a single pixel per point. Points outside img are ignored.
func Mark(img *image.RGBA, pts []image.Point, c color.Color) {
	for _, p := range pts {
		if p.In(img.Bounds()) {
			img.Set(p.X, p.Y, c)
		}
	}
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	if factor < 1 {
		factor = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func fillBinaryRGBA(buf []byte, cells []bool, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA leaves buf transparent black when the palette is empty.
func fillPaletteRGBA(buf []byte, cells []int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf)
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := min(max(c, 0), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func cellColor(id uint32) color.RGBA {
	if id == 0 {
		return color.RGBA{A: 0xff}
	}
	h := id * 2654435761
	return color.RGBA{R: uint8(h >> 24), G: uint8(h >> 16), B: uint8(h >> 8), A: 0xff}
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

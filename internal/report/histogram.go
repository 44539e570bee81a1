// Package report writes diagnostic charts for generated maps.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"mapgen/internal/core"
)

var (
	landColor = color.RGBA{R: 90, G: 140, B: 70, A: 255}
	seaColor  = color.RGBA{R: 45, G: 95, B: 160, A: 255}
)

// HeightHistogram plots the distribution of heights, split into land and
// sea pixels, and saves it to path. The image format follows the file
// extension.
func HeightHistogram(heights *core.ScalarGrid, land *core.Mask, bins int, path string) error {
	if _, err := core.SquareSize(heights, land); err != nil {
		return err
	}
	if bins < 1 {
		return core.Preconditionf("report: bins must be positive, got %d", bins)
	}

	var landVals, seaVals plotter.Values
	for i, v := range heights.Cells() {
		if land.Cells()[i] {
			landVals = append(landVals, v)
		} else {
			seaVals = append(seaVals, v)
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Height distribution (%dx%d)", heights.W, heights.H)
	p.X.Label.Text = "Height"
	p.Y.Label.Text = "Pixels"

	for _, s := range []struct {
		name  string
		vals  plotter.Values
		color color.Color
	}{
		{"land", landVals, landColor},
		{"sea", seaVals, seaColor},
	} {
		if len(s.vals) == 0 {
			continue
		}
		h, err := plotter.NewHist(s.vals, bins)
		if err != nil {
			return fmt.Errorf("report: %s histogram: %w", s.name, err)
		}
		h.FillColor = s.color
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(fmt.Sprintf("%s (%d)", s.name, len(s.vals)), h)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

// Package pipeline wires the generation stages into a complete map.
package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"mapgen/internal/cells"
	"mapgen/internal/core"
	"mapgen/internal/height"
	"mapgen/internal/noise"
	"mapgen/internal/scatter"
	"mapgen/internal/shading"
	"mapgen/internal/voronoi"
)

// Map is the result of one generation run.
type Map struct {
	Config Config

	// Color is the final shaded map, channels in [0, 255].
	Color *core.ColorGrid
	// Cells holds the Voronoi region id of every pixel.
	Cells    *core.CellGrid
	Boundary *core.Mask
	Rivers   *core.Mask
	Land     *core.Mask
	// Height is the remapped elevation with rivers carved to 0.
	Height *core.ScalarGrid
	// Biomes holds a BiomeIndex per pixel, or WaterBiome on water.
	Biomes *core.BandGrid
	// Trees lists placements as (column, row) pixels in row-major order.
	Trees []image.Point

	Stats Stats
}

// Stats summarises a run.
type Stats struct {
	Points       int
	Cells        int
	Overlaps     int
	LandFraction float64
	RiverPixels  int
	Trees        int
	Stages       []core.StageTime
	Elapsed      time.Duration
}

// Palette returns the biome palette matching m.Biomes.
func (m *Map) Palette() []color.RGBA {
	return BiomePalette(m.Config.Shape.QuantizeBins)
}

// Generate runs every stage in order. The result is a pure function of cfg;
// the first failing stage aborts the run.
func Generate(cfg Config) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := cfg.Size
	exec := cfg.Exec()
	rng := core.NewRNG(cfg.Seed)
	timer := core.NewStageTimer()
	log := core.Logger()
	m := &Map{Config: cfg}

	// Cells.
	pts, err := voronoi.Relax(rng.UniformPoints(cfg.Points, float64(size)), size, cfg.RelaxIterations)
	if err != nil {
		return nil, fmt.Errorf("relax points: %w", err)
	}
	diagram, err := voronoi.Build(pts, size)
	if err != nil {
		return nil, fmt.Errorf("build voronoi: %w", err)
	}
	var raster voronoi.RasterStats
	m.Cells, raster = voronoi.Rasterize(diagram, exec)
	m.Stats.Points = len(pts)
	m.Stats.Cells = raster.Painted
	m.Stats.Overlaps = raster.Overlaps
	if m.Boundary, err = cells.Boundary(m.Cells, cfg.Boundary.KernelRadius, exec); err != nil {
		return nil, fmt.Errorf("cell boundary: %w", err)
	}
	timer.Mark("cells")

	// Noise layers.
	tp, pp, hp := cfg.Noise.layers()
	temperature, err := equalizedField(size, tp, cfg.Shape.EqualizeAlpha, exec)
	if err != nil {
		return nil, fmt.Errorf("temperature: %w", err)
	}
	precipitation, err := equalizedField(size, pp, cfg.Shape.EqualizeAlpha, exec)
	if err != nil {
		return nil, fmt.Errorf("precipitation: %w", err)
	}
	elevation, err := equalizedField(size, hp, cfg.Shape.EqualizeAlpha, exec)
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	timer.Mark("noise")

	// Biomes per cell.
	bins := cfg.Shape.QuantizeBins
	cellBiomes, err := classify(m.Cells, temperature, precipitation, bins)
	if err != nil {
		return nil, fmt.Errorf("classify biomes: %w", err)
	}
	timer.Mark("biomes")

	// Height.
	m.Land = core.Map(elevation, func(v float64) bool { return v > cfg.Shape.SeaLevel })
	smooth := height.Smooth(elevation, cfg.Shape.SmoothSigma, exec)
	curve, err := height.NewBezierRemap(cfg.Shape.BezierX1, cfg.Shape.BezierY1,
		cfg.Shape.BezierX2, cfg.Shape.BezierY2, cfg.Shape.BezierA)
	if err != nil {
		return nil, err
	}
	if m.Height, err = height.Filter(elevation, smooth, curve, cfg.Shape.BlendWeight, exec); err != nil {
		return nil, fmt.Errorf("height filter: %w", err)
	}
	timer.Mark("height")

	// Rivers.
	if m.Rivers, err = rivers(rng, cfg, m.Land); err != nil {
		return nil, fmt.Errorf("rivers: %w", err)
	}
	riverLand := core.And(m.Land, core.Not(m.Rivers))
	carved := m.Height.Cells()
	for i, r := range m.Rivers.Cells() {
		if r {
			carved[i] = 0
		}
	}
	m.Stats.RiverPixels = core.Count(m.Rivers)
	timer.Mark("rivers")

	// Colors.
	if m.Biomes, err = cells.Broadcast(m.Cells, cellBiomes, exec); err != nil {
		return nil, fmt.Errorf("biome map: %w", err)
	}
	water := WaterBiome(bins)
	for i, dry := range riverLand.Cells() {
		if !dry {
			m.Biomes.Cells()[i] = water
		}
	}
	base := core.Map(m.Biomes, paletteRGB(BiomePalette(bins)))
	if m.Color, _, err = shading.Composite(base, smooth, m.Height, riverLand,
		cfg.Shading.Intensity, cfg.Shading.Offset, exec); err != nil {
		return nil, fmt.Errorf("shading: %w", err)
	}
	timer.Mark("shading")

	// Trees.
	m.Trees, _, err = scatter.Place(rng, cfg.Scatter.ObjectCount, size, scatter.Constraints{
		Density:   precipitation,
		Threshold: cfg.Scatter.Threshold,
		Valid:     riverLand,
		Height:    m.Height,
		MaxHeight: cfg.Scatter.MaxHeight,
	}, voronoi.DefaultRelaxIterations)
	if err != nil {
		return nil, fmt.Errorf("place trees: %w", err)
	}
	timer.Mark("trees")

	m.Stats.LandFraction = float64(core.Count(m.Land)) / float64(size*size)
	m.Stats.Trees = len(m.Trees)
	m.Stats.Stages = timer.Stages()
	m.Stats.Elapsed = timer.Total()
	log.Debug("map generated",
		"size", size,
		"cells", m.Stats.Cells,
		"land", m.Stats.LandFraction,
		"trees", m.Stats.Trees,
		"elapsed", m.Stats.Elapsed)
	return m, nil
}

func equalizedField(size int, p noise.Params, alpha float64, exec core.Exec) (*core.ScalarGrid, error) {
	f, err := noise.Field(size, p, exec)
	if err != nil {
		return nil, err
	}
	return height.Equalize(f, alpha)
}

// classify returns the BiomeIndex of every cell id from the per-cell mean
// temperature and precipitation.
func classify(cellGrid *core.CellGrid, temperature, precipitation *core.ScalarGrid, bins int) ([]int, error) {
	t, err := cells.Average(cellGrid, temperature)
	if err != nil {
		return nil, err
	}
	p, err := cells.Average(cellGrid, precipitation)
	if err != nil {
		return nil, err
	}
	edges := height.Edges(bins)
	out := make([]int, len(t))
	for id := range out {
		out[id] = BiomeIndex(height.Band(edges, t[id]), height.Band(edges, p[id]), bins)
	}
	return out, nil
}

// rivers traces the borders of a sparser tessellation across land.
func rivers(rng *core.RNG, cfg Config, land *core.Mask) (*core.Mask, error) {
	size := cfg.Size
	if cfg.Boundary.RiverPoints == 0 {
		return core.NewSquare[bool](size), nil
	}
	pts, err := voronoi.Relax(rng.UniformPoints(cfg.Boundary.RiverPoints, float64(size)), size, cfg.RelaxIterations)
	if err != nil {
		return nil, err
	}
	d, err := voronoi.Build(pts, size)
	if err != nil {
		return nil, err
	}
	grid, _ := voronoi.Rasterize(d, cfg.Exec())
	border, err := cells.Boundary(grid, cfg.Boundary.RiverKernelRadius, cfg.Exec())
	if err != nil {
		return nil, err
	}
	return core.And(border, land), nil
}

func paletteRGB(palette []color.RGBA) func(int) core.RGB {
	return func(i int) core.RGB {
		c := palette[i]
		return core.RGB{int(c.R), int(c.G), int(c.B)}
	}
}

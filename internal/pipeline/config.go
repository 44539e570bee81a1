package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mapgen/internal/core"
	"mapgen/internal/noise"
	"mapgen/internal/voronoi"
)

// NoiseParams configures the temperature, precipitation and height layers.
// Layers share octave settings and differ in seed: temperature uses
// NoiseSeed, precipitation NoiseSeed+1 and height NoiseSeed+2 at twice the
// resolution.
type NoiseParams struct {
	Resolution  float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	NoiseSeed   int64
	MapSeed     int64
}

// ShapeParams configures height shaping and biome banding.
type ShapeParams struct {
	EqualizeAlpha float64
	QuantizeBins  int
	BezierX1      float64
	BezierY1      float64
	BezierX2      float64
	BezierY2      float64
	BezierA       float64
	BlendWeight   float64
	SmoothSigma   float64
	SeaLevel      float64
}

// ShadingParams configures relief shading.
type ShadingParams struct {
	Intensity float64
	Offset    float64
}

// BoundaryParams configures cell borders and rivers.
type BoundaryParams struct {
	KernelRadius      int
	RiverPoints       int
	RiverKernelRadius int
}

// ScatterParams configures tree placement.
type ScatterParams struct {
	ObjectCount int
	Threshold   float64
	MaxHeight   float64
}

// Config controls one generation run.
type Config struct {
	Size            int
	Seed            int64
	Points          int
	RelaxIterations int
	Parallel        bool

	Noise    NoiseParams
	Shape    ShapeParams
	Shading  ShadingParams
	Boundary BoundaryParams
	Scatter  ScatterParams
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:            256,
		Seed:            1337,
		Points:          128,
		RelaxIterations: voronoi.DefaultRelaxIterations,
		Noise: NoiseParams{
			Resolution:  2,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			NoiseSeed:   1,
			MapSeed:     762345,
		},
		Shape: ShapeParams{
			EqualizeAlpha: 1,
			QuantizeBins:  4,
			BezierX1:      0.75,
			BezierY1:      0.2,
			BezierX2:      0.95,
			BezierY2:      0.2,
			BezierA:       0.24,
			BlendWeight:   0.5,
			SmoothSigma:   5,
			SeaLevel:      0,
		},
		Shading: ShadingParams{
			Intensity: 1,
			Offset:    192,
		},
		Boundary: BoundaryParams{
			KernelRadius:      1,
			RiverPoints:       24,
			RiverKernelRadius: 1,
		},
		Scatter: ScatterParams{
			ObjectCount: 1500,
			Threshold:   0.1,
			MaxHeight:   0.2,
		},
	}
}

// layers returns the noise parameters of the temperature, precipitation and
// height fields.
func (n NoiseParams) layers() (temperature, precipitation, elevation noise.Params) {
	base := noise.Params{
		Res:         n.Resolution,
		MapSeed:     n.MapSeed,
		Octaves:     n.Octaves,
		Persistence: n.Persistence,
		Lacunarity:  n.Lacunarity,
	}
	temperature, precipitation, elevation = base, base, base
	temperature.Seed = n.NoiseSeed
	precipitation.Seed = n.NoiseSeed + 1
	elevation.Seed = n.NoiseSeed + 2
	elevation.Res = 2 * n.Resolution
	return temperature, precipitation, elevation
}

// Exec returns the execution mode selected by the Parallel flag.
func (c Config) Exec() core.Exec { return core.Exec{Parallel: c.Parallel} }

// Validate reports the first parameter that cannot produce a map.
func (c Config) Validate() error {
	switch {
	case c.Size < 2:
		return core.Preconditionf("size must be at least 2, got %d", c.Size)
	case c.Points < 4:
		return core.Preconditionf("points must be at least 4, got %d", c.Points)
	case c.RelaxIterations < 0:
		return core.Preconditionf("relax_iterations must not be negative, got %d", c.RelaxIterations)
	case c.Shape.QuantizeBins < 1:
		return core.Preconditionf("quantize_bins must be at least 1, got %d", c.Shape.QuantizeBins)
	case c.Shading.Intensity <= 0:
		return core.Preconditionf("shading_intensity must be positive, got %g", c.Shading.Intensity)
	case c.Boundary.KernelRadius < 0 || c.Boundary.RiverKernelRadius < 0:
		return core.Preconditionf("boundary kernel radii must not be negative")
	case c.Boundary.RiverPoints != 0 && c.Boundary.RiverPoints < 4:
		return core.Preconditionf("river_points must be 0 or at least 4, got %d", c.Boundary.RiverPoints)
	case c.Scatter.ObjectCount != 0 && c.Scatter.ObjectCount < 4:
		return core.Preconditionf("object_count must be 0 or at least 4, got %d", c.Scatter.ObjectCount)
	}
	_, _, elevation := c.Noise.layers()
	return elevation.Validate()
}

// field binds a named parameter to its location in Config.
type field struct {
	key   string
	label string
	group string
	ref   func(c *Config) any
}

var fields = []field{
	{"size", "Size", groupWorld, func(c *Config) any { return &c.Size }},
	{"seed", "Seed", groupWorld, func(c *Config) any { return &c.Seed }},
	{"parallel", "Parallel", groupWorld, func(c *Config) any { return &c.Parallel }},

	{"points", "Points", groupCells, func(c *Config) any { return &c.Points }},
	{"relax_iterations", "Relax iterations", groupCells, func(c *Config) any { return &c.RelaxIterations }},
	{"boundary_kernel_radius", "Boundary kernel radius", groupCells, func(c *Config) any { return &c.Boundary.KernelRadius }},

	{"resolution", "Resolution", groupNoise, func(c *Config) any { return &c.Noise.Resolution }},
	{"octaves", "Octaves", groupNoise, func(c *Config) any { return &c.Noise.Octaves }},
	{"persistence", "Persistence", groupNoise, func(c *Config) any { return &c.Noise.Persistence }},
	{"lacunarity", "Lacunarity", groupNoise, func(c *Config) any { return &c.Noise.Lacunarity }},
	{"noise_seed", "Noise seed", groupNoise, func(c *Config) any { return &c.Noise.NoiseSeed }},
	{"map_seed", "Map seed", groupNoise, func(c *Config) any { return &c.Noise.MapSeed }},

	{"equalize_alpha", "Equalize alpha", groupShape, func(c *Config) any { return &c.Shape.EqualizeAlpha }},
	{"quantize_bins", "Quantize bins", groupShape, func(c *Config) any { return &c.Shape.QuantizeBins }},
	{"bezier_x1", "Bezier x1", groupShape, func(c *Config) any { return &c.Shape.BezierX1 }},
	{"bezier_y1", "Bezier y1", groupShape, func(c *Config) any { return &c.Shape.BezierY1 }},
	{"bezier_x2", "Bezier x2", groupShape, func(c *Config) any { return &c.Shape.BezierX2 }},
	{"bezier_y2", "Bezier y2", groupShape, func(c *Config) any { return &c.Shape.BezierY2 }},
	{"bezier_a", "Bezier end height", groupShape, func(c *Config) any { return &c.Shape.BezierA }},
	{"blend_weight_b", "Blend weight", groupShape, func(c *Config) any { return &c.Shape.BlendWeight }},
	{"smooth_sigma", "Smoothing sigma", groupShape, func(c *Config) any { return &c.Shape.SmoothSigma }},
	{"sea_level", "Sea level", groupShape, func(c *Config) any { return &c.Shape.SeaLevel }},

	{"shading_intensity", "Shading intensity", groupShading, func(c *Config) any { return &c.Shading.Intensity }},
	{"shading_offset", "Shading offset", groupShading, func(c *Config) any { return &c.Shading.Offset }},

	{"river_points", "River points", groupRivers, func(c *Config) any { return &c.Boundary.RiverPoints }},
	{"river_kernel_radius", "River kernel radius", groupRivers, func(c *Config) any { return &c.Boundary.RiverKernelRadius }},

	{"object_count", "Object count", groupScatter, func(c *Config) any { return &c.Scatter.ObjectCount }},
	{"placement_threshold", "Placement threshold", groupScatter, func(c *Config) any { return &c.Scatter.Threshold }},
	{"placement_max_height", "Placement max height", groupScatter, func(c *Config) any { return &c.Scatter.MaxHeight }},
}

const (
	groupWorld   = "World"
	groupCells   = "Cells"
	groupNoise   = "Noise"
	groupShape   = "Height"
	groupShading = "Shading"
	groupRivers  = "Rivers"
	groupScatter = "Trees"
)

func lookupField(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// Set parses value into the parameter named key.
func (c *Config) Set(key, value string) error {
	f, ok := lookupField(key)
	if !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}
	switch p := f.ref(c).(type) {
	case *int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = v
	case *int64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = v
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for k, v := range cfg {
		_ = c.Set(k, v)
	}
	return c
}

// ApplyMap sets every key of m, failing on the first unknown key or
// unparsable value.
func (c *Config) ApplyMap(m map[string]string) error {
	for _, f := range fields {
		v, ok := m[f.key]
		if !ok {
			continue
		}
		if err := c.Set(f.key, v); err != nil {
			return err
		}
	}
	for k := range m {
		if _, ok := lookupField(k); !ok {
			return fmt.Errorf("unknown parameter %q", k)
		}
	}
	return nil
}

const maxConfigSize = 1 * 1024 * 1024 // 1MB

// LoadConfig reads a flat JSON object of named parameters and merges it over
// the defaults. The file must have a .json extension.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if json.Unmarshal(v, &s) == nil {
			values[k] = s
			continue
		}
		values[k] = string(v)
	}

	c := DefaultConfig()
	if err := c.ApplyMap(values); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

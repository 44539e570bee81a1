package app

import (
	"flag"
	"fmt"
	"strings"

	"mapgen/internal/pipeline"
)

// GenerationFlags selects the generation parameters from the command line.
type GenerationFlags struct {
	ConfigPath string
	Set        KVList
}

// Bind attaches the generation flags to the provided FlagSet.
func (g *GenerationFlags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&g.ConfigPath, "config", g.ConfigPath, "JSON file of generation parameters")
	fs.Var(&g.Set, "set", "override a generation parameter (key=value, repeatable)")
}

// Resolve builds the map configuration: defaults, then the JSON file, then
// -set overrides.
func (g *GenerationFlags) Resolve() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if g.ConfigPath != "" {
		loaded, err := pipeline.LoadConfig(g.ConfigPath)
		if err != nil {
			return pipeline.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyMap(g.Set.Map()); err != nil {
		return pipeline.Config{}, err
	}
	return cfg, cfg.Validate()
}

// Config represents the command-line parameters of the viewer.
type Config struct {
	GenerationFlags
	Layer string
	Scale int
	TPS   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Layer: LayerColor.String(), Scale: 3, TPS: 30}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.GenerationFlags.Bind(fs)
	fs.StringVar(&c.Layer, "layer", c.Layer, "initial layer: "+strings.Join(layerNames, ", "))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
}

// KVList is a repeatable key=value flag.
type KVList []string

func (l *KVList) String() string { return strings.Join(*l, ",") }

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Later pairs win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

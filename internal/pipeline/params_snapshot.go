package pipeline

import (
	"fmt"

	"mapgen/internal/core"
)

// Parameters returns the grouped tunables of c, in declaration order.
func (c Config) Parameters() core.ParameterSnapshot {
	var groups []core.ParameterGroup
	index := make(map[string]int)
	for _, f := range fields {
		gi, ok := index[f.group]
		if !ok {
			gi = len(groups)
			index[f.group] = gi
			groups = append(groups, core.ParameterGroup{Name: f.group})
		}
		groups[gi].Params = append(groups[gi].Params, param(f, &c))
	}
	return core.ParameterSnapshot{Groups: groups}
}

func param(f field, c *Config) core.Parameter {
	switch v := f.ref(c).(type) {
	case *int:
		return core.IntParam(f.key, f.label, *v)
	case *int64:
		return core.Int64Param(f.key, f.label, *v)
	case *float64:
		return core.FloatParam(f.key, f.label, *v)
	case *bool:
		return core.BoolParam(f.key, f.label, *v)
	default:
		panic(fmt.Sprintf("pipeline: unsupported parameter type %T for %q", v, f.key))
	}
}

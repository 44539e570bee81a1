package pipeline

import (
	"sort"
	"sync"
	"time"
)

// Summary captures the outcome of one seed in a sweep.
type Summary struct {
	Seed         int64
	Cells        int
	Overlaps     int
	LandFraction float64
	RiverPixels  int
	Trees        int
	Elapsed      time.Duration
	Err          error
}

// SeedConfig derives the configuration for seed: both the point seed and
// the map seed are replaced.
func SeedConfig(base Config, seed int64) Config {
	cfg := base
	cfg.Seed = seed
	cfg.Noise.MapSeed = seed
	return cfg
}

// Sweep generates one map per seed on at most workers goroutines and
// returns the summaries sorted by seed. Failed runs are reported through
// Summary.Err.
func Sweep(base Config, seeds []int64, workers int) []Summary {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Summary, len(seeds))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, seed := range seeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s int64) {
			defer wg.Done()
			out[i] = summarize(SeedConfig(base, s))
			<-sem
		}(idx, seed)
	}
	wg.Wait()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out
}

func summarize(cfg Config) Summary {
	m, err := Generate(cfg)
	if err != nil {
		return Summary{Seed: cfg.Seed, Err: err}
	}
	return Summary{
		Seed:         cfg.Seed,
		Cells:        m.Stats.Cells,
		Overlaps:     m.Stats.Overlaps,
		LandFraction: m.Stats.LandFraction,
		RiverPixels:  m.Stats.RiverPixels,
		Trees:        m.Stats.Trees,
		Elapsed:      m.Stats.Elapsed,
	}
}

// Seeds returns count consecutive seeds starting at from.
func Seeds(from int64, count int) []int64 {
	if count <= 0 {
		return nil
	}
	out := make([]int64, count)
	for i := range out {
		out[i] = from + int64(i)
	}
	return out
}

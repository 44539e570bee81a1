package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"time"

	"mapgen/internal/app"
	"mapgen/internal/pipeline"
)

func main() {
	var gen app.GenerationFlags
	gen.Bind(flag.CommandLine)
	from := flag.Int64("from", 1, "first seed")
	count := flag.Int("count", 16, "number of consecutive seeds")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "number of seeds to list by land fraction")
	flag.Parse()

	base, err := gen.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	seeds := pipeline.Seeds(*from, *count)
	fmt.Printf("Sweeping %d seeds from %d (%d workers, size %d)\n", len(seeds), *from, *workers, base.Size)

	start := time.Now()
	all := pipeline.Sweep(base, seeds, *workers)
	elapsed := time.Since(start)

	failed := 0
	fmt.Printf("\n%8s %6s %8s %7s %7s %6s %10s\n", "seed", "cells", "overlaps", "land%", "rivers", "trees", "elapsed")
	for _, s := range all {
		if s.Err != nil {
			failed++
			fmt.Printf("%8d error: %v\n", s.Seed, s.Err)
			continue
		}
		fmt.Printf("%8d %6d %8d %7.1f %7d %6d %10s\n",
			s.Seed, s.Cells, s.Overlaps, 100*s.LandFraction, s.RiverPixels, s.Trees, s.Elapsed.Round(time.Millisecond))
	}

	ok := make([]pipeline.Summary, 0, len(all))
	for _, s := range all {
		if s.Err == nil {
			ok = append(ok, s)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool { return ok[i].LandFraction > ok[j].LandFraction })
	fmt.Printf("\nTop %d by land fraction (elapsed %s, %d failed):\n", min(*top, len(ok)), elapsed.Round(time.Millisecond), failed)
	for i := 0; i < len(ok) && i < *top; i++ {
		s := ok[i]
		fmt.Printf("%2d) seed=%d land=%.1f%% trees=%d\n", i+1, s.Seed, 100*s.LandFraction, s.Trees)
	}
}

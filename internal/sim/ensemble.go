package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/shakerbed/internal/motion"
)

// Ensemble replays one gesture across consecutive seeds, each run on its
// own goroutine with its own world. Concurrency is bounded to the
// available CPUs; a single run stays strictly single-threaded.
type Ensemble struct {
	Base      Config
	Gesture   motion.Gesture
	Seconds   float64
	Loop      bool
	Runs      int
	SeedStart int64
}

// Run executes every seed and returns results in seed order.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.Runs)
	errs := make([]error, e.Runs)

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			cfg := e.Base
			cfg.Seed = e.SeedStart + int64(idx)
			results[idx], errs[idx] = Run(ctx, cfg, e.Gesture, e.Seconds, e.Loop)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// EnsembleStats summarizes the final spread across ensemble results.
func EnsembleStats(results []*Result) (mean, min, max float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	min = results[0].Metrics["final_spread"]
	max = min
	for _, r := range results {
		s := r.Metrics["final_spread"]
		mean += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	mean /= float64(len(results))
	return mean, min, max
}

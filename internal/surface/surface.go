// Package surface sweeps a Cartesian grid of cascade parameters, aggregates
// repeated-run statistics per grid point, and derives regulatory thresholds
// from the aggregate.
package surface

import (
	"runtime"
	"sync"

	"cascade-lab/internal/cascade"
	"cascade-lab/internal/density"
)

// Grid declares the parameter grid swept by Build.
type Grid struct {
	SeedFractions   []float64              `json:"seedFractions" yaml:"seed_fractions"`
	SignalStrengths []float64              `json:"signalStrengths" yaml:"signal_strengths"`
	FocusOptions    []cascade.SpatialFocus `json:"spatialFocusOptions" yaml:"focus_options"`
	RunsPerPoint    int                    `json:"runsPerPoint" yaml:"runs_per_point"`
}

// CellStats aggregates the repeated runs of one grid point. Raw per-run
// metrics are retained for auditability.
type CellStats struct {
	MeanPeakAdoption        float64           `json:"meanPeakAdoption"`
	MeanPeakFear            float64           `json:"meanPeakFear"`
	MeanVulnerabilityDamage float64           `json:"meanVulnerabilityDamage"`
	ProbabilityHarmful      float64           `json:"probabilityHarmful"`
	Runs                    []cascade.Metrics `json:"runs"`
}

// Cell is one grid point together with its aggregated statistics.
type Cell struct {
	SeedFraction   float64              `json:"seedFraction"`
	SignalStrength float64              `json:"signalStrength"`
	Focus          cascade.SpatialFocus `json:"spatialFocus"`
	Stats          CellStats            `json:"stats"`
}

// Config carries the shared, read-only inputs of one surface sweep.
type Config struct {
	Provider density.Provider
	Graph    cascade.MobilityGraph
	Sim      cascade.SimConfig

	// TimeHorizon and DT apply to every run of the sweep.
	TimeHorizon float64
	DT          float64

	// Workers caps how many grid cells are processed concurrently. Zero or
	// negative selects one worker per CPU.
	Workers int
}

// Build iterates the full Cartesian product of the grid with seedFraction
// outermost, then signalStrength, then focus. That nesting is the declared
// order of the returned sequence and holds regardless of worker count: cells
// are dispatched to a pool but results land by index. Each cell runs
// RunsPerPoint simulations with seeds 0..RunsPerPoint-1; within a cell only
// the seed varies. The first run error aborts the sweep.
func Build(grid Grid, cfg Config) ([]Cell, error) {
	cells := make([]Cell, 0, len(grid.SeedFractions)*len(grid.SignalStrengths)*len(grid.FocusOptions))
	for _, sf := range grid.SeedFractions {
		for _, ss := range grid.SignalStrengths {
			for _, focus := range grid.FocusOptions {
				cells = append(cells, Cell{SeedFraction: sf, SignalStrength: ss, Focus: focus})
			}
		}
	}
	if len(cells) == 0 {
		return cells, nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cells) {
		workers = len(cells)
	}

	jobs := make(chan int)
	errs := make([]error, len(cells))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				stats, err := runCell(cells[idx], grid.RunsPerPoint, cfg)
				if err != nil {
					errs[idx] = err
					continue
				}
				cells[idx].Stats = stats
			}
		}()
	}

	for idx := range cells {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// runCell joins all runs of a cell before aggregating so the harm
// probability is exact. Zero RunsPerPoint degrades to zeroed aggregates via
// the neutral denominator rather than failing.
func runCell(cell Cell, runs int, cfg Config) (CellStats, error) {
	stats := CellStats{Runs: make([]cascade.Metrics, 0, runs)}
	harmful := 0
	sumAdoption := 0.0
	sumFear := 0.0
	sumDamage := 0.0

	for seed := 0; seed < runs; seed++ {
		theta := cascade.Theta{
			SeedFraction:   cell.SeedFraction,
			SignalStrength: cell.SignalStrength,
			Focus:          cell.Focus,
			TimeHorizon:    cfg.TimeHorizon,
			DT:             cfg.DT,
			RandomSeed:     int64(seed),
		}
		res, err := cascade.Run(theta, cfg.Provider, cfg.Graph, cfg.Sim)
		if err != nil {
			return CellStats{}, err
		}
		stats.Runs = append(stats.Runs, res.Metrics)
		sumAdoption += res.Metrics.GlobalPeakAdoption.Value
		sumFear += res.Metrics.GlobalPeakFear.Value
		sumDamage += res.Metrics.VulnerabilityDamage.Value
		if res.Metrics.HarmfulCascade {
			harmful++
		}
	}

	div := float64(runs)
	if runs == 0 {
		div = 1
	}
	stats.MeanPeakAdoption = sumAdoption / div
	stats.MeanPeakFear = sumFear / div
	stats.MeanVulnerabilityDamage = sumDamage / div
	stats.ProbabilityHarmful = float64(harmful) / div
	return stats, nil
}

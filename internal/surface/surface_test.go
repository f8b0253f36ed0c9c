package surface

import (
	"reflect"
	"testing"

	"cascade-lab/internal/cascade"
	"cascade-lab/internal/density"
)

func sweepConfig(workers int) Config {
	regions := []string{"a", "b"}
	sim := cascade.DefaultSimConfig()
	sim.PopByRegion = map[string]float64{"a": 1000, "b": 500}
	return Config{
		Provider: density.NewSynthetic(regions, func(string, float64) float64 { return 2 }, nil),
		Graph: cascade.MobilityGraph{
			"a": {{To: "b", Weight: 0.3}},
			"b": {{To: "a", Weight: 0.2}},
		},
		Sim:         sim,
		TimeHorizon: 10,
		DT:          1,
		Workers:     workers,
	}
}

func TestBuildCellCountAndAggregates(t *testing.T) {
	grid := Grid{
		SeedFractions:   []float64{0.1, 0.2},
		SignalStrengths: []float64{0.5},
		FocusOptions:    []cascade.SpatialFocus{{Type: cascade.FocusUniform}},
		RunsPerPoint:    3,
	}

	cells, err := Build(grid, sweepConfig(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("surface has %d cells, want 2", len(cells))
	}

	for i, cell := range cells {
		if len(cell.Stats.Runs) != 3 {
			t.Fatalf("cell %d retained %d raw metrics, want 3", i, len(cell.Stats.Runs))
		}
		harmful := 0
		for _, run := range cell.Stats.Runs {
			if run.HarmfulCascade {
				harmful++
			}
		}
		want := float64(harmful) / 3
		if cell.Stats.ProbabilityHarmful != want {
			t.Fatalf("cell %d harm probability %f, want %f", i, cell.Stats.ProbabilityHarmful, want)
		}
	}
}

func TestBuildAggregatesVulnerabilityDamage(t *testing.T) {
	cfg := sweepConfig(1)
	regions := []string{"a", "b"}
	cfg.Provider = density.NewSynthetic(regions,
		func(string, float64) float64 { return 2 },
		map[string]density.Attributes{
			"a": {Vulnerability: 1},
			"b": {Vulnerability: 0.5},
		})
	cfg.Sim.InitialFearByRegion = map[string]float64{"a": 1}

	grid := Grid{
		SeedFractions:   []float64{0.1},
		SignalStrengths: []float64{0.5},
		FocusOptions:    []cascade.SpatialFocus{{Type: cascade.FocusUniform}},
		RunsPerPoint:    4,
	}

	cells, err := Build(grid, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for _, run := range cells[0].Stats.Runs {
		sum += run.VulnerabilityDamage.Value
	}
	want := sum / 4
	if want == 0 {
		t.Fatal("setup error: weighted regions should produce nonzero damage")
	}
	if cells[0].Stats.MeanVulnerabilityDamage != want {
		t.Fatalf("mean damage %f, want %f", cells[0].Stats.MeanVulnerabilityDamage, want)
	}
}

func TestBuildPreservesGridOrder(t *testing.T) {
	grid := Grid{
		SeedFractions:   []float64{0.1, 0.2},
		SignalStrengths: []float64{0.3, 0.6},
		FocusOptions: []cascade.SpatialFocus{
			{Type: cascade.FocusUniform},
			{Type: cascade.FocusKernel, Centers: []string{"a"}},
		},
		RunsPerPoint: 1,
	}

	cells, err := Build(grid, sweepConfig(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 8 {
		t.Fatalf("surface has %d cells, want 8", len(cells))
	}

	// seedFraction outermost, then signalStrength, then focus.
	wantSeed := []float64{0.1, 0.1, 0.1, 0.1, 0.2, 0.2, 0.2, 0.2}
	wantSignal := []float64{0.3, 0.3, 0.6, 0.6, 0.3, 0.3, 0.6, 0.6}
	for i, cell := range cells {
		if cell.SeedFraction != wantSeed[i] || cell.SignalStrength != wantSignal[i] {
			t.Fatalf("cell %d is (%f, %f), want (%f, %f)",
				i, cell.SeedFraction, cell.SignalStrength, wantSeed[i], wantSignal[i])
		}
	}
	if cells[0].Focus.Type != cascade.FocusUniform || cells[1].Focus.Type != cascade.FocusKernel {
		t.Fatal("focus must be the innermost iteration axis")
	}
}

func TestBuildIndependentOfWorkerCount(t *testing.T) {
	grid := Grid{
		SeedFractions:   []float64{0.05, 0.1, 0.2},
		SignalStrengths: []float64{0.4, 0.8},
		FocusOptions:    []cascade.SpatialFocus{{Type: cascade.FocusUniform}},
		RunsPerPoint:    2,
	}

	serial, err := Build(grid, sweepConfig(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parallel, err := Build(grid, sweepConfig(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(serial, parallel) {
		t.Fatal("surface must be identical for any worker count")
	}
}

func TestBuildEmptyGrid(t *testing.T) {
	cells, err := Build(Grid{}, sweepConfig(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 0 {
		t.Fatalf("empty grid produced %d cells, want 0", len(cells))
	}
}

func TestBuildZeroRunsPerPointDegradesSilently(t *testing.T) {
	grid := Grid{
		SeedFractions:   []float64{0.1},
		SignalStrengths: []float64{0.5},
		FocusOptions:    []cascade.SpatialFocus{{Type: cascade.FocusUniform}},
		RunsPerPoint:    0,
	}

	cells, err := Build(grid, sweepConfig(1))
	if err != nil {
		t.Fatalf("zero runs per point must not fail: %v", err)
	}
	stats := cells[0].Stats
	if stats.ProbabilityHarmful != 0 || stats.MeanPeakAdoption != 0 || stats.MeanPeakFear != 0 {
		t.Fatalf("zero-run aggregates %+v, want all zero", stats)
	}
	if len(stats.Runs) != 0 {
		t.Fatalf("zero-run cell retained %d metrics, want 0", len(stats.Runs))
	}
}

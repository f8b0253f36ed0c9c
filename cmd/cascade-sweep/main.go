package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"time"

	"cascade-lab/internal/scenario"
	"cascade-lab/internal/surface"
)

type sweepOutput struct {
	Surface    []surface.Cell          `json:"surface"`
	Thresholds surface.ThresholdReport `json:"thresholds"`
}

func main() {
	scenarioPath := flag.String("scenario", "", "path to the scenario YAML file")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	runs := flag.Int("runs", 0, "override runs per grid point (0 keeps the scenario value)")
	jsonOut := flag.Bool("json", false, "emit the surface and thresholds as JSON on stdout")
	top := flag.Int("top", 5, "number of highest-risk cells to report")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("missing -scenario")
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatal(err)
	}

	grid := sc.Grid
	if *runs > 0 {
		grid.RunsPerPoint = *runs
	}

	points := len(grid.SeedFractions) * len(grid.SignalStrengths) * len(grid.FocusOptions)
	if !*jsonOut {
		fmt.Printf("Sweeping %d grid points x %d runs over %d regions (%d workers)\n",
			points, grid.RunsPerPoint, len(sc.Provider.Regions()), *workers)
	}

	start := time.Now()
	cells, err := surface.Build(grid, surface.Config{
		Provider:    sc.Provider,
		Graph:       sc.Graph,
		Sim:         sc.Sim,
		TimeHorizon: sc.TimeHorizon,
		DT:          sc.DT,
		Workers:     *workers,
	})
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	report := surface.DeriveRegulatoryThresholds(cells, sc.Constraints)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sweepOutput{Surface: cells, Thresholds: report}); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf("Swept %d cells in %s\n\n", len(cells), elapsed.Round(time.Millisecond))

	riskiest := append([]surface.Cell(nil), cells...)
	sort.SliceStable(riskiest, func(i, j int) bool {
		return riskiest[i].Stats.ProbabilityHarmful > riskiest[j].Stats.ProbabilityHarmful
	})
	fmt.Printf("Top %d cells by harm probability:\n", *top)
	for i := 0; i < len(riskiest) && i < *top; i++ {
		c := riskiest[i]
		fmt.Printf("%2d) seed=%.3f signal=%.3f focus=%s pHarm=%.3f meanPeakA=%.3f meanPeakF=%.3f meanDamage=%.3f\n",
			i+1, c.SeedFraction, c.SignalStrength, c.Focus.Key(),
			c.Stats.ProbabilityHarmful, c.Stats.MeanPeakAdoption, c.Stats.MeanPeakFear,
			c.Stats.MeanVulnerabilityDamage)
	}

	fmt.Println()
	if !report.Safe {
		fmt.Println(report.Message)
		return
	}
	fmt.Println("Regulatory thresholds per spatial focus:")
	for _, th := range report.Thresholds {
		fmt.Printf("  %-32s maxSeedFraction=%.3f maxSignalStrength=%.3f (pHarm<=%.3f, meanFear<=%.3f, damage<=%.3f)\n",
			th.FocusKey, th.MaxSeedFraction, th.MaxSignalStrength,
			th.Constraints.MaxHarmProbability, th.Constraints.MaxMeanGlobalFear,
			th.Constraints.MaxVulnerabilityDamage)
	}
}

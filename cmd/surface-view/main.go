//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"runtime"

	"cascade-lab/internal/app"
	"cascade-lab/internal/scenario"
	"cascade-lab/internal/surface"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to the scenario YAML file")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	scale := flag.Int("scale", 64, "pixels per grid cell")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("missing -scenario")
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatal(err)
	}

	cells, err := surface.Build(sc.Grid, surface.Config{
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

	game := app.New(cells, *scale)

	ebiten.SetWindowTitle("cascade-lab surface")
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

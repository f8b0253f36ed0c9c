package cascade

import (
	"fmt"
	"math"

	"cascade-lab/internal/density"
)

// seedJitterAmplitude is the symmetric random perturbation applied to each
// region's initial adoption fraction.
const seedJitterAmplitude = 0.1

type inboundEdge struct {
	from   string
	weight float64
}

// Run executes one seeded cascade simulation. The provider's region list is
// the authoritative universe for the run; graph edges touching regions
// outside it are ignored. The returned history holds T+1 snapshots for
// T = floor(timeHorizon/dt) applied updates, snapshot taken before each
// update. The only error source is the density provider; its failures abort
// the run.
func Run(theta Theta, provider density.Provider, graph MobilityGraph, cfg SimConfig) (RunResult, error) {
	regions := provider.Regions()
	rng := cfg.rng(theta.RandomSeed)

	steps := 0
	if theta.DT > 0 {
		steps = int(math.Floor(theta.TimeHorizon / theta.DT))
	}

	totalPop := 0.0
	for _, r := range regions {
		totalPop += cfg.PopByRegion[r]
	}

	// Seed adoption from the spatial-focus weights. Zero populations cannot
	// fault the division: the denominator falls back to 1 and the result is
	// clamped like every other fraction.
	weights := SpatialFocusWeights(regions, theta.Focus, cfg.PopByRegion)
	targetSeedPop := theta.SeedFraction * totalPop

	curA := make(map[string]float64, len(regions))
	curF := make(map[string]float64, len(regions))
	for _, r := range regions {
		div := cfg.PopByRegion[r]
		if div == 0 {
			div = 1
		}
		seeded := weights[r] * targetSeedPop / div
		frac := seeded / div
		if frac > 1 {
			frac = 1
		}
		frac += rng.Jitter(seedJitterAmplitude)
		curA[r] = clamp01(frac)
		curF[r] = cfg.InitialFearByRegion[r]
	}

	// Invert the mobility graph once, walking sources in universe order so
	// every later summation is deterministic.
	inUniverse := make(map[string]bool, len(regions))
	for _, r := range regions {
		inUniverse[r] = true
	}
	incoming := make(map[string][]inboundEdge, len(regions))
	for _, from := range regions {
		for _, e := range graph[from] {
			if !inUniverse[e.To] {
				continue
			}
			incoming[e.To] = append(incoming[e.To], inboundEdge{from: from, weight: e.Weight})
		}
	}

	hist := History{
		Adoption: make([]Snapshot, 0, steps+1),
		Fear:     make([]Snapshot, 0, steps+1),
	}
	exposure := make(map[string]float64, len(regions))
	nextA := make(map[string]float64, len(regions))
	nextF := make(map[string]float64, len(regions))

	for step := 0; step <= steps; step++ {
		t := float64(step) * theta.DT
		hist.Adoption = append(hist.Adoption, Snapshot{T: t, Values: copyValues(regions, curA)})
		hist.Fear = append(hist.Fear, Snapshot{T: t, Values: copyValues(regions, curF)})
		if step == steps {
			break
		}

		// Exposure pass. Density is sampled at t=0 regardless of step: the
		// provider supports time-varying density but the dynamics use the
		// initial field only.
		for _, r := range regions {
			d, err := provider.Density(r, 0)
			if err != nil {
				return RunResult{}, fmt.Errorf("density for region %q: %w", r, err)
			}
			contact := cfg.Adoption.BaseContact * math.Pow(d+1, cfg.Adoption.DensityExponent)
			local := cfg.Adoption.LocalWeight * contact * curA[r]
			imported := 0.0
			for _, in := range incoming[r] {
				imported += in.weight * curA[in.from]
			}
			exposure[r] = theta.SignalStrength * (local + cfg.Adoption.ImportedWeight*imported)
		}

		// Update pass into the back buffers; no region may observe another
		// region's already-updated value within the same step.
		for _, r := range regions {
			a := curA[r]
			f := curF[r]
			exp := exposure[r]

			dA := exp * cfg.Adoption.ExposureScale / (1 + cfg.Adoption.FearSensitivity*f) * (1 - a)
			if dA > cfg.Adoption.MaxRate {
				dA = cfg.Adoption.MaxRate
			}
			nextA[r] = clamp01(a + dA)

			harm := cfg.Fear.Harm.Adoption*a + cfg.Fear.Harm.Fear*f + cfg.Fear.Harm.Exposure*exp
			growth := dA
			if growth < 0 {
				growth = 0
			}
			driver := cfg.Fear.KExposure*exp + cfg.Fear.KGrowth*growth + cfg.Fear.KHarm*harm
			if cfg.Fear.NonLinearSpike && driver > cfg.Fear.SpikeThreshold {
				driver *= cfg.Fear.SpikeGain
			}
			nf := f + driver - cfg.Fear.Decay*f
			if nf < 0 {
				nf = 0
			}
			nextF[r] = nf
		}

		curA, nextA = nextA, curA
		curF, nextF = nextF, curF
	}

	vuln := make(map[string]float64, len(regions))
	for _, r := range regions {
		vuln[r] = provider.RegionAttributes(r).Vulnerability
	}

	return RunResult{
		History: hist,
		Metrics: computeMetrics(hist, regions, cfg, vuln),
	}, nil
}

func copyValues(regions []string, src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(regions))
	for _, r := range regions {
		dst[r] = src[r]
	}
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

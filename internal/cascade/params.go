package cascade

import "cascade-lab/pkg/core"

// AdoptionParams holds the tunables of the adoption update equation.
type AdoptionParams struct {
	// BaseContact scales the local contact rate before density weighting.
	BaseContact float64
	// DensityExponent shapes how density amplifies contact: (density+1)^exp.
	DensityExponent float64
	// ExposureScale converts exposure into adoption pressure.
	ExposureScale float64
	// MaxRate caps per-step adoption growth in any single region.
	MaxRate float64
	// FearSensitivity dampens adoption as fear rises: 1/(1+sens*F).
	FearSensitivity float64
	// LocalWeight scales locally generated exposure.
	LocalWeight float64
	// ImportedWeight scales exposure imported over mobility edges.
	ImportedWeight float64
}

// DefaultAdoptionParams returns the standard adoption tunables.
func DefaultAdoptionParams() AdoptionParams {
	return AdoptionParams{
		BaseContact:     1.0,
		DensityExponent: 0.5,
		ExposureScale:   1.0,
		MaxRate:         0.25,
		FearSensitivity: 1.0,
		LocalWeight:     1.0,
		ImportedWeight:  0.5,
	}
}

// HarmWeights combines state variables into the harm signal feeding fear
// growth. All weights default to zero; the harm channel is opt-in.
type HarmWeights struct {
	Adoption float64
	Fear     float64
	Exposure float64
}

// FearParams holds the tunables of the fear update equation.
type FearParams struct {
	// KExposure couples raw exposure into the fear driver.
	KExposure float64
	// KGrowth couples per-step adoption growth into the fear driver.
	KGrowth float64
	// KHarm couples the weighted harm signal into the fear driver.
	KHarm float64
	// Decay relaxes fear toward zero each step.
	Decay float64
	// Harm weighs adoption/fear/exposure into the harm signal.
	Harm HarmWeights
	// NonLinearSpike enables the spike amplifier on strong drivers.
	NonLinearSpike bool
	// SpikeThreshold is the driver level above which the spike fires.
	SpikeThreshold float64
	// SpikeGain multiplies the driver when the spike fires.
	SpikeGain float64
}

// DefaultFearParams returns the standard fear tunables.
func DefaultFearParams() FearParams {
	return FearParams{
		KExposure:      0.1,
		KGrowth:        0.5,
		KHarm:          1.0,
		Decay:          0.1,
		SpikeThreshold: 0.5,
		SpikeGain:      2.0,
	}
}

// CascadeCriteria defines when a snapshot counts toward a harmful cascade: a
// region qualifies when adoption and fear both cross their thresholds, and
// the cascade is harmful once qualifying regions hold CriticalPopShare of
// the total population.
type CascadeCriteria struct {
	MaterialAdoption float64
	CriticalFear     float64
	CriticalPopShare float64
}

// DefaultCascadeCriteria returns the standard harmful-cascade thresholds.
func DefaultCascadeCriteria() CascadeCriteria {
	return CascadeCriteria{
		MaterialAdoption: 0.3,
		CriticalFear:     0.7,
		CriticalPopShare: 0.1,
	}
}

// SimConfig carries the non-theta simulation parameters. One SimConfig is
// shared read-only across many runs.
type SimConfig struct {
	Adoption AdoptionParams
	Fear     FearParams
	Criteria CascadeCriteria

	// PopByRegion maps region id to population. Regions missing from the map
	// count as population zero.
	PopByRegion map[string]float64
	// InitialFearByRegion optionally seeds per-region fear; missing regions
	// start at zero.
	InitialFearByRegion map[string]float64

	// NewRNG builds the random stream for a seed. Nil selects core.NewRNG.
	NewRNG func(seed int64) *core.RNG
}

// DefaultSimConfig returns a SimConfig with every tunable at its default.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Adoption: DefaultAdoptionParams(),
		Fear:     DefaultFearParams(),
		Criteria: DefaultCascadeCriteria(),
	}
}

func (c SimConfig) rng(seed int64) *core.RNG {
	if c.NewRNG != nil {
		return c.NewRNG(seed)
	}
	return core.NewRNG(seed)
}

// Package scenario translates YAML scenario files into the structures the
// simulation core consumes. It is orchestration glue: the core itself never
// reads files, and every default lives in the core's own constructors —
// this package only overlays what a file specifies.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cascade-lab/internal/cascade"
	"cascade-lab/internal/density"
	"cascade-lab/internal/surface"
)

// RegionSpec describes one region in a scenario file.
type RegionSpec struct {
	ID             string              `yaml:"id"`
	Population     float64             `yaml:"population"`
	BaseDensity    float64             `yaml:"base_density"`
	DensitySamples map[float64]float64 `yaml:"density_samples"`
	InitialFear    float64             `yaml:"initial_fear"`
	Vulnerability  float64             `yaml:"vulnerability"`
	VenueMix       map[string]float64  `yaml:"venue_mix"`
}

// adoptionOverrides overlays cascade.AdoptionParams. Pointer fields
// distinguish "absent" from an explicit zero.
type adoptionOverrides struct {
	BaseContact     *float64 `yaml:"base_contact"`
	DensityExponent *float64 `yaml:"density_exponent"`
	ExposureScale   *float64 `yaml:"exposure_scale"`
	MaxRate         *float64 `yaml:"max_rate"`
	FearSensitivity *float64 `yaml:"fear_sensitivity"`
	LocalWeight     *float64 `yaml:"local_weight"`
	ImportedWeight  *float64 `yaml:"imported_weight"`
}

func (o adoptionOverrides) apply(p *cascade.AdoptionParams) {
	setFloat(&p.BaseContact, o.BaseContact)
	setFloat(&p.DensityExponent, o.DensityExponent)
	setFloat(&p.ExposureScale, o.ExposureScale)
	setFloat(&p.MaxRate, o.MaxRate)
	setFloat(&p.FearSensitivity, o.FearSensitivity)
	setFloat(&p.LocalWeight, o.LocalWeight)
	setFloat(&p.ImportedWeight, o.ImportedWeight)
}

type fearOverrides struct {
	KExposure      *float64 `yaml:"k_exposure"`
	KGrowth        *float64 `yaml:"k_growth"`
	KHarm          *float64 `yaml:"k_harm"`
	Decay          *float64 `yaml:"decay"`
	HarmAdoption   *float64 `yaml:"harm_adoption"`
	HarmFear       *float64 `yaml:"harm_fear"`
	HarmExposure   *float64 `yaml:"harm_exposure"`
	NonLinearSpike *bool    `yaml:"non_linear_spike"`
	SpikeThreshold *float64 `yaml:"spike_threshold"`
	SpikeGain      *float64 `yaml:"spike_gain"`
}

func (o fearOverrides) apply(p *cascade.FearParams) {
	setFloat(&p.KExposure, o.KExposure)
	setFloat(&p.KGrowth, o.KGrowth)
	setFloat(&p.KHarm, o.KHarm)
	setFloat(&p.Decay, o.Decay)
	setFloat(&p.Harm.Adoption, o.HarmAdoption)
	setFloat(&p.Harm.Fear, o.HarmFear)
	setFloat(&p.Harm.Exposure, o.HarmExposure)
	if o.NonLinearSpike != nil {
		p.NonLinearSpike = *o.NonLinearSpike
	}
	setFloat(&p.SpikeThreshold, o.SpikeThreshold)
	setFloat(&p.SpikeGain, o.SpikeGain)
}

type criteriaOverrides struct {
	MaterialAdoption *float64 `yaml:"material_adoption"`
	CriticalFear     *float64 `yaml:"critical_fear"`
	CriticalPopShare *float64 `yaml:"critical_pop_share"`
}

func (o criteriaOverrides) apply(c *cascade.CascadeCriteria) {
	setFloat(&c.MaterialAdoption, o.MaterialAdoption)
	setFloat(&c.CriticalFear, o.CriticalFear)
	setFloat(&c.CriticalPopShare, o.CriticalPopShare)
}

type constraintOverrides struct {
	MaxHarmProbability     *float64 `yaml:"max_harm_probability"`
	MaxMeanGlobalFear      *float64 `yaml:"max_mean_global_fear"`
	MaxVulnerabilityDamage *float64 `yaml:"max_vulnerability_damage"`
}

func (o constraintOverrides) apply(c *surface.RiskConstraints) {
	setFloat(&c.MaxHarmProbability, o.MaxHarmProbability)
	setFloat(&c.MaxMeanGlobalFear, o.MaxMeanGlobalFear)
	setFloat(&c.MaxVulnerabilityDamage, o.MaxVulnerabilityDamage)
}

type document struct {
	Regions     []RegionSpec              `yaml:"regions"`
	Mobility    map[string][]cascade.Edge `yaml:"mobility"`
	Adoption    adoptionOverrides         `yaml:"adoption"`
	Fear        fearOverrides             `yaml:"fear"`
	Criteria    criteriaOverrides         `yaml:"criteria"`
	Grid        surface.Grid              `yaml:"grid"`
	Constraints constraintOverrides       `yaml:"constraints"`
	TimeHorizon float64                   `yaml:"time_horizon"`
	DT          float64                   `yaml:"dt"`
}

// Scenario is a fully assembled, validated set of sweep inputs.
type Scenario struct {
	Provider    *density.Lookup
	Graph       cascade.MobilityGraph
	Sim         cascade.SimConfig
	Grid        surface.Grid
	Constraints surface.RiskConstraints
	TimeHorizon float64
	DT          float64
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse assembles a scenario from YAML bytes, overlaying the file on the
// core defaults and validating once.
func Parse(raw []byte) (*Scenario, error) {
	doc := document{TimeHorizon: 30, DT: 1}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("scenario defines no regions")
	}
	if doc.DT <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", doc.DT)
	}
	if doc.TimeHorizon < 0 {
		return nil, fmt.Errorf("time_horizon must be non-negative, got %g", doc.TimeHorizon)
	}
	if doc.Grid.RunsPerPoint < 0 {
		return nil, fmt.Errorf("runs_per_point must be non-negative, got %d", doc.Grid.RunsPerPoint)
	}

	order := make([]string, 0, len(doc.Regions))
	seen := make(map[string]bool, len(doc.Regions))
	samples := make(map[string]map[float64]float64)
	base := make(map[string]float64)
	attrs := make(map[string]density.Attributes)
	pops := make(map[string]float64, len(doc.Regions))
	initialFear := make(map[string]float64)

	for _, r := range doc.Regions {
		if r.ID == "" {
			return nil, fmt.Errorf("region with empty id")
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate region id %q", r.ID)
		}
		if r.Population < 0 {
			return nil, fmt.Errorf("region %q has negative population %g", r.ID, r.Population)
		}
		seen[r.ID] = true
		order = append(order, r.ID)
		pops[r.ID] = r.Population
		base[r.ID] = r.BaseDensity
		if len(r.DensitySamples) > 0 {
			samples[r.ID] = r.DensitySamples
		}
		if r.InitialFear != 0 {
			initialFear[r.ID] = r.InitialFear
		}
		attrs[r.ID] = density.Attributes{
			Vulnerability: r.Vulnerability,
			VenueMix:      r.VenueMix,
		}
	}

	for from, edges := range doc.Mobility {
		if !seen[from] {
			return nil, fmt.Errorf("mobility source %q is not a declared region", from)
		}
		for _, e := range edges {
			if e.Weight < 0 {
				return nil, fmt.Errorf("mobility edge %s->%s has negative weight %g", from, e.To, e.Weight)
			}
		}
	}

	sim := cascade.DefaultSimConfig()
	sim.PopByRegion = pops
	if len(initialFear) > 0 {
		sim.InitialFearByRegion = initialFear
	}
	doc.Adoption.apply(&sim.Adoption)
	doc.Fear.apply(&sim.Fear)
	doc.Criteria.apply(&sim.Criteria)

	constraints := surface.DefaultRiskConstraints()
	doc.Constraints.apply(&constraints)

	return &Scenario{
		Provider:    density.NewLookup(order, samples, base, attrs),
		Graph:       doc.Mobility,
		Sim:         sim,
		Grid:        doc.Grid,
		Constraints: constraints,
		TimeHorizon: doc.TimeHorizon,
		DT:          doc.DT,
	}, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

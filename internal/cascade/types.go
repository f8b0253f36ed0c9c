// Package cascade implements the concept-cascade simulator: a deterministic,
// seeded run of adoption/fear dynamics over a region graph for one parameter
// vector, producing a full time history and summary metrics.
package cascade

import (
	"sort"
	"strings"
)

// Edge is one directed mobility link from an implicit source region.
type Edge struct {
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// MobilityGraph maps a source region id to its outgoing edges. Weights are
// relative flow intensities: no symmetry or normalization is implied, and a
// region with no edges simply imports and exports nothing.
type MobilityGraph map[string][]Edge

// FocusType tags the spatial-focus policy used to distribute initial seeding.
type FocusType string

const (
	// FocusUniform spreads seeding weight equally over all regions.
	FocusUniform FocusType = "uniform"
	// FocusExplicit uses a caller-supplied region weight map.
	FocusExplicit FocusType = "explicit"
	// FocusKernel concentrates weight in listed center regions by population,
	// leaving a small residual for everything else.
	FocusKernel FocusType = "kernel"
)

// SpatialFocus selects and parameterizes a seeding policy. Weights is only
// read for FocusExplicit, Centers only for FocusKernel.
type SpatialFocus struct {
	Type    FocusType          `json:"type" yaml:"type"`
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Centers []string           `json:"centers,omitempty" yaml:"centers,omitempty"`
}

// Key returns the canonical grouping key for this focus configuration.
// Kernel keys sort the center ids so equivalent center sets compare equal
// regardless of the order they were supplied in.
func (f SpatialFocus) Key() string {
	switch f.Type {
	case FocusUniform, "":
		return string(FocusUniform)
	case FocusKernel:
		centers := append([]string(nil), f.Centers...)
		sort.Strings(centers)
		return "kernel:" + strings.Join(centers, ",")
	case FocusExplicit:
		return string(FocusExplicit)
	default:
		return string(f.Type)
	}
}

// Theta is the parameter vector driving exactly one simulation run.
type Theta struct {
	SeedFraction   float64      `json:"seedFraction"`
	SignalStrength float64      `json:"signalStrength"`
	Focus          SpatialFocus `json:"spatialFocus"`
	TimeHorizon    float64      `json:"timeHorizon"`
	DT             float64      `json:"dt"`
	RandomSeed     int64        `json:"randomSeed"`
}

// Snapshot is one retained time slice of a per-region state variable.
type Snapshot struct {
	T      float64            `json:"t"`
	Values map[string]float64 `json:"values"`
}

// History is the complete simulation trace: one adoption and one fear
// snapshot per step, retained until metrics are extracted.
type History struct {
	Adoption []Snapshot `json:"adoption"`
	Fear     []Snapshot `json:"fear"`
}

// Peak records a state variable's maximum together with when it occurred.
type Peak struct {
	Value float64 `json:"value"`
	T     float64 `json:"t"`
}

// Metrics is the read-only summary derived from one run's history.
// VulnerabilityDamage is the peak of the vulnerability-weighted mean fear
// across snapshots, weighing each region by the Vulnerability attribute its
// density provider reports.
type Metrics struct {
	GlobalPeakAdoption  Peak            `json:"globalPeakAdoption"`
	GlobalPeakFear      Peak            `json:"globalPeakFear"`
	VulnerabilityDamage Peak            `json:"vulnerabilityDamage"`
	RegionPeakAdoption  map[string]Peak `json:"regionPeakAdoption"`
	RegionPeakFear      map[string]Peak `json:"regionPeakFear"`
	HarmfulCascade      bool            `json:"harmfulCascade"`
}

// RunResult bundles a run's full trace with its derived metrics.
type RunResult struct {
	History History `json:"history"`
	Metrics Metrics `json:"metrics"`
}

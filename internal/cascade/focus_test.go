package cascade

import (
	"math"
	"testing"
)

func TestUniformWeights(t *testing.T) {
	regions := []string{"a", "b", "c", "d"}
	weights := SpatialFocusWeights(regions, SpatialFocus{Type: FocusUniform}, nil)

	sum := 0.0
	for _, r := range regions {
		if math.Abs(weights[r]-0.25) > 1e-12 {
			t.Fatalf("weight[%s] = %f, want 0.25", r, weights[r])
		}
		sum += weights[r]
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("uniform weights sum to %f, want 1", sum)
	}
}

func TestMissingAndUnrecognizedTypesFallBackToUniform(t *testing.T) {
	regions := []string{"a", "b"}
	for _, focus := range []SpatialFocus{{}, {Type: "gaussian"}} {
		weights := SpatialFocusWeights(regions, focus, nil)
		if weights["a"] != 0.5 || weights["b"] != 0.5 {
			t.Fatalf("focus %+v: weights %v, want uniform 0.5", focus, weights)
		}
	}
}

func TestExplicitWeightsNormalized(t *testing.T) {
	regions := []string{"a", "b"}
	focus := SpatialFocus{Type: FocusExplicit, Weights: map[string]float64{"a": 2, "b": 2}}
	weights := SpatialFocusWeights(regions, focus, nil)

	if weights["a"] != 0.5 || weights["b"] != 0.5 {
		t.Fatalf("explicit weights %v, want {a:0.5 b:0.5}", weights)
	}
}

func TestExplicitWeightsMissingRegionGetsZero(t *testing.T) {
	regions := []string{"a", "b", "c"}
	focus := SpatialFocus{Type: FocusExplicit, Weights: map[string]float64{"a": 1, "b": 3}}
	weights := SpatialFocusWeights(regions, focus, nil)

	if weights["c"] != 0 {
		t.Fatalf("region outside the map should get weight 0, got %f", weights["c"])
	}
	if math.Abs(weights["a"]-0.25) > 1e-12 || math.Abs(weights["b"]-0.75) > 1e-12 {
		t.Fatalf("explicit weights %v, want {a:0.25 b:0.75 c:0}", weights)
	}
}

func TestKernelWeightsFavorCenters(t *testing.T) {
	regions := []string{"hub", "spoke1", "spoke2"}
	pops := map[string]float64{"hub": 300, "spoke1": 100, "spoke2": 100}
	focus := SpatialFocus{Type: FocusKernel, Centers: []string{"hub"}}
	weights := SpatialFocusWeights(regions, focus, pops)

	if weights["hub"] != 1 {
		t.Fatalf("sole center should carry its full population share, got %f", weights["hub"])
	}
	wantSpoke := kernelResidual * 100 / 500
	if math.Abs(weights["spoke1"]-wantSpoke) > 1e-15 {
		t.Fatalf("spoke residual = %g, want %g", weights["spoke1"], wantSpoke)
	}

	// Kernel weights deliberately do not sum to 1.
	sum := weights["hub"] + weights["spoke1"] + weights["spoke2"]
	if sum <= 1 {
		t.Fatalf("kernel weights summed to %f, expected >1 with residuals on top", sum)
	}
}

func TestKernelWeightsSplitCentersByPopulation(t *testing.T) {
	regions := []string{"a", "b", "c"}
	pops := map[string]float64{"a": 100, "b": 300, "c": 600}
	focus := SpatialFocus{Type: FocusKernel, Centers: []string{"a", "b"}}
	weights := SpatialFocusWeights(regions, focus, pops)

	if math.Abs(weights["a"]-0.25) > 1e-12 || math.Abs(weights["b"]-0.75) > 1e-12 {
		t.Fatalf("center weights %v, want a:0.25 b:0.75 of center population", weights)
	}
}

func TestFocusKeyCanonicalizesCenters(t *testing.T) {
	a := SpatialFocus{Type: FocusKernel, Centers: []string{"oslo", "bergen"}}
	b := SpatialFocus{Type: FocusKernel, Centers: []string{"bergen", "oslo"}}
	if a.Key() != b.Key() {
		t.Fatalf("equivalent kernel center sets produced different keys: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() != "kernel:bergen,oslo" {
		t.Fatalf("kernel key = %q, want sorted comma-joined ids", a.Key())
	}

	if (SpatialFocus{}).Key() != "uniform" {
		t.Fatal("missing focus type should key as uniform")
	}
	if (SpatialFocus{Type: "gaussian"}).Key() != "gaussian" {
		t.Fatal("unrecognized focus type should key as its raw type string")
	}
}

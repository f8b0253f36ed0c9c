package render

import "cascade-lab/internal/surface"

// Metric selects which aggregate a surface layer exposes.
type Metric int

const (
	// MetricMeanAdoption shows mean global peak adoption per cell.
	MetricMeanAdoption Metric = iota
	// MetricMeanFear shows mean global peak fear per cell.
	MetricMeanFear
	// MetricHarmProbability shows the harmful-cascade probability per cell.
	MetricHarmProbability
	// MetricVulnerabilityDamage shows mean vulnerability-weighted damage per cell.
	MetricVulnerabilityDamage
)

// Label names the metric for overlays.
func (m Metric) Label() string {
	switch m {
	case MetricMeanFear:
		return "mean peak fear"
	case MetricHarmProbability:
		return "harm probability"
	case MetricVulnerabilityDamage:
		return "vulnerability damage"
	default:
		return "mean peak adoption"
	}
}

// Layer is one renderable slice of a response surface: the cells sharing a
// focus key arranged as a seed-fraction × signal-strength grid.
type Layer struct {
	FocusKey string
	// W counts distinct seed fractions, H distinct signal strengths. Cell
	// (x, y) sits at Values index y*W+x.
	W, H  int
	cells []surface.Cell
	seeds []float64
	sigs  []float64
}

// Layers splits a surface into one layer per focus key, in first-appearance
// order.
func Layers(cells []surface.Cell) []Layer {
	var order []string
	byKey := make(map[string][]surface.Cell)
	for _, cell := range cells {
		key := cell.Focus.Key()
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], cell)
	}

	layers := make([]Layer, 0, len(order))
	for _, key := range order {
		group := byKey[key]
		layer := Layer{FocusKey: key, cells: group}
		seedIdx := make(map[float64]int)
		sigIdx := make(map[float64]int)
		for _, cell := range group {
			if _, ok := seedIdx[cell.SeedFraction]; !ok {
				seedIdx[cell.SeedFraction] = len(layer.seeds)
				layer.seeds = append(layer.seeds, cell.SeedFraction)
			}
			if _, ok := sigIdx[cell.SignalStrength]; !ok {
				sigIdx[cell.SignalStrength] = len(layer.sigs)
				layer.sigs = append(layer.sigs, cell.SignalStrength)
			}
		}
		layer.W = len(layer.seeds)
		layer.H = len(layer.sigs)
		layers = append(layers, layer)
	}
	return layers
}

// Values extracts the selected metric as a W*H row-major grid.
func (l Layer) Values(metric Metric) []float64 {
	seedIdx := make(map[float64]int, l.W)
	for i, s := range l.seeds {
		seedIdx[s] = i
	}
	sigIdx := make(map[float64]int, l.H)
	for i, s := range l.sigs {
		sigIdx[s] = i
	}

	values := make([]float64, l.W*l.H)
	for _, cell := range l.cells {
		x := seedIdx[cell.SeedFraction]
		y := sigIdx[cell.SignalStrength]
		switch metric {
		case MetricMeanFear:
			values[y*l.W+x] = cell.Stats.MeanPeakFear
		case MetricHarmProbability:
			values[y*l.W+x] = cell.Stats.ProbabilityHarmful
		case MetricVulnerabilityDamage:
			values[y*l.W+x] = cell.Stats.MeanVulnerabilityDamage
		default:
			values[y*l.W+x] = cell.Stats.MeanPeakAdoption
		}
	}
	return values
}

package surface

// NoSafeRegionMessage is returned when no surface cell satisfies the risk
// constraints. This outcome is a regular result for the caller to branch on,
// not an error.
const NoSafeRegionMessage = "No parameter region satisfies risk constraints."

// RiskConstraints bounds the aggregate risk a parameter cell may carry and
// still count as safe.
type RiskConstraints struct {
	MaxHarmProbability     float64 `json:"maxHarmProbability" yaml:"max_harm_probability"`
	MaxMeanGlobalFear      float64 `json:"maxMeanGlobalFear" yaml:"max_mean_global_fear"`
	MaxVulnerabilityDamage float64 `json:"maxVulnerabilityDamage" yaml:"max_vulnerability_damage"`
}

// DefaultRiskConstraints returns the standard constraints: no harmful run
// tolerated, mean global peak fear and mean vulnerability damage capped at 1.
func DefaultRiskConstraints() RiskConstraints {
	return RiskConstraints{
		MaxHarmProbability:     0,
		MaxMeanGlobalFear:      1.0,
		MaxVulnerabilityDamage: 1.0,
	}
}

// Threshold records, per spatial-focus configuration, the maximum parameter
// values found among safe cells. The two maxima are taken independently and
// may come from different cells.
type Threshold struct {
	FocusKey          string          `json:"focusKey"`
	MaxSeedFraction   float64         `json:"maxSeedFraction"`
	MaxSignalStrength float64         `json:"maxSignalStrength"`
	Constraints       RiskConstraints `json:"constraints"`
}

// ThresholdReport is the outcome of a threshold derivation.
type ThresholdReport struct {
	Safe       bool        `json:"safe"`
	Message    string      `json:"message,omitempty"`
	Thresholds []Threshold `json:"thresholds"`
}

// DeriveRegulatoryThresholds filters the surface to cells whose harm
// probability, mean peak fear, and mean vulnerability damage stay within the
// constraints, groups the survivors by canonical focus key, and reports
// per-group maxima. Group order follows first appearance in the surface. Each
// record echoes the constraints it was derived under for audit. A zero-value
// RiskConstraints admits only cells with zero on every statistic; callers
// wanting the standard bounds should start from DefaultRiskConstraints.
func DeriveRegulatoryThresholds(cells []Cell, rc RiskConstraints) ThresholdReport {
	var order []string
	groups := make(map[string]*Threshold)

	for _, cell := range cells {
		if cell.Stats.ProbabilityHarmful > rc.MaxHarmProbability {
			continue
		}
		if cell.Stats.MeanPeakFear > rc.MaxMeanGlobalFear {
			continue
		}
		if cell.Stats.MeanVulnerabilityDamage > rc.MaxVulnerabilityDamage {
			continue
		}

		key := cell.Focus.Key()
		th, ok := groups[key]
		if !ok {
			order = append(order, key)
			groups[key] = &Threshold{
				FocusKey:          key,
				MaxSeedFraction:   cell.SeedFraction,
				MaxSignalStrength: cell.SignalStrength,
				Constraints:       rc,
			}
			continue
		}
		if cell.SeedFraction > th.MaxSeedFraction {
			th.MaxSeedFraction = cell.SeedFraction
		}
		if cell.SignalStrength > th.MaxSignalStrength {
			th.MaxSignalStrength = cell.SignalStrength
		}
	}

	if len(order) == 0 {
		return ThresholdReport{Safe: false, Message: NoSafeRegionMessage}
	}

	thresholds := make([]Threshold, 0, len(order))
	for _, key := range order {
		thresholds = append(thresholds, *groups[key])
	}
	return ThresholdReport{Safe: true, Thresholds: thresholds}
}

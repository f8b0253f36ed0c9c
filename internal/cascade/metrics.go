package cascade

// computeMetrics derives the run summary from a complete history. Peaks use
// strict greater-than comparison so ties keep their first occurrence; the
// harmful-cascade scan short-circuits at the first qualifying snapshot.
// vuln maps region id to its vulnerability weight; negative weights count
// as zero.
func computeMetrics(hist History, regions []string, cfg SimConfig, vuln map[string]float64) Metrics {
	m := Metrics{
		RegionPeakAdoption: make(map[string]Peak, len(regions)),
		RegionPeakFear:     make(map[string]Peak, len(regions)),
	}

	totalPop := 0.0
	for _, r := range regions {
		totalPop += cfg.PopByRegion[r]
	}
	popDiv := totalPop
	if popDiv == 0 {
		popDiv = 1
	}

	weightedAvg := func(values map[string]float64) float64 {
		sum := 0.0
		for _, r := range regions {
			sum += cfg.PopByRegion[r] * values[r]
		}
		return sum / popDiv
	}

	for i, snap := range hist.Adoption {
		avg := weightedAvg(snap.Values)
		if i == 0 || avg > m.GlobalPeakAdoption.Value {
			m.GlobalPeakAdoption = Peak{Value: avg, T: snap.T}
		}
	}
	for i, snap := range hist.Fear {
		avg := weightedAvg(snap.Values)
		if i == 0 || avg > m.GlobalPeakFear.Value {
			m.GlobalPeakFear = Peak{Value: avg, T: snap.T}
		}
	}

	for _, r := range regions {
		for i, snap := range hist.Adoption {
			v := snap.Values[r]
			if i == 0 || v > m.RegionPeakAdoption[r].Value {
				m.RegionPeakAdoption[r] = Peak{Value: v, T: snap.T}
			}
		}
		for i, snap := range hist.Fear {
			v := snap.Values[r]
			if i == 0 || v > m.RegionPeakFear[r].Value {
				m.RegionPeakFear[r] = Peak{Value: v, T: snap.T}
			}
		}
	}

	vulnTotal := 0.0
	for _, r := range regions {
		if w := vuln[r]; w > 0 {
			vulnTotal += w
		}
	}
	vulnDiv := vulnTotal
	if vulnDiv == 0 {
		vulnDiv = 1
	}
	for i, snap := range hist.Fear {
		sum := 0.0
		for _, r := range regions {
			if w := vuln[r]; w > 0 {
				sum += w * snap.Values[r]
			}
		}
		d := sum / vulnDiv
		if i == 0 || d > m.VulnerabilityDamage.Value {
			m.VulnerabilityDamage = Peak{Value: d, T: snap.T}
		}
	}

	for i := range hist.Adoption {
		if i >= len(hist.Fear) {
			break
		}
		qualifying := 0.0
		for _, r := range regions {
			if hist.Adoption[i].Values[r] >= cfg.Criteria.MaterialAdoption &&
				hist.Fear[i].Values[r] >= cfg.Criteria.CriticalFear {
				qualifying += cfg.PopByRegion[r]
			}
		}
		if qualifying/popDiv >= cfg.Criteria.CriticalPopShare {
			m.HarmfulCascade = true
			break
		}
	}

	return m
}

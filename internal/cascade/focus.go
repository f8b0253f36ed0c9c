package cascade

// kernelResidual is the fixed weight multiplier granted to non-center
// regions under kernel focus.
const kernelResidual = 0.001

// SpatialFocusWeights distributes seeding weight over the region universe
// according to the focus policy.
//
// Uniform (and any unrecognized type) assigns 1/N to every region. Explicit
// normalizes the supplied weight map to sum to 1 over the universe; regions
// absent from the map get zero. Kernel gives each center its population
// share of the total center population, and every non-center a residual of
// kernelResidual times its share of total population — kernel weights need
// not sum to 1, the imbalance toward centers is deliberate.
func SpatialFocusWeights(regions []string, focus SpatialFocus, popByRegion map[string]float64) map[string]float64 {
	weights := make(map[string]float64, len(regions))

	switch focus.Type {
	case FocusExplicit:
		total := 0.0
		for _, r := range regions {
			total += focus.Weights[r]
		}
		if total == 0 {
			total = 1
		}
		for _, r := range regions {
			weights[r] = focus.Weights[r] / total
		}

	case FocusKernel:
		isCenter := make(map[string]bool, len(focus.Centers))
		for _, id := range focus.Centers {
			isCenter[id] = true
		}
		totalPop := 0.0
		centerPop := 0.0
		for _, r := range regions {
			pop := popByRegion[r]
			totalPop += pop
			if isCenter[r] {
				centerPop += pop
			}
		}
		if centerPop == 0 {
			centerPop = 1
		}
		if totalPop == 0 {
			totalPop = 1
		}
		for _, r := range regions {
			pop := popByRegion[r]
			if isCenter[r] {
				weights[r] = pop / centerPop
			} else {
				weights[r] = kernelResidual * pop / totalPop
			}
		}

	default:
		n := len(regions)
		if n == 0 {
			return weights
		}
		w := 1.0 / float64(n)
		for _, r := range regions {
			weights[r] = w
		}
	}

	return weights
}

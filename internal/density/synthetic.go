package density

// DensityFunc computes a density value for a region at a point in time.
type DensityFunc func(regionID string, t float64) float64

// Synthetic is a Provider driven by an arbitrary generator function, useful
// for tests and analytic scenarios that need no precomputed table.
type Synthetic struct {
	order []string
	fn    DensityFunc
	attrs map[string]Attributes
}

// NewSynthetic builds a generator-backed provider over the given region
// order. A nil fn yields zero density everywhere.
func NewSynthetic(order []string, fn DensityFunc, attrs map[string]Attributes) *Synthetic {
	return &Synthetic{
		order: append([]string(nil), order...),
		fn:    fn,
		attrs: attrs,
	}
}

// Density evaluates the generator function.
func (s *Synthetic) Density(regionID string, t float64) (float64, error) {
	if s.fn == nil {
		return 0, nil
	}
	return s.fn(regionID, t), nil
}

// RegionAttributes returns the static attributes recorded for the region.
func (s *Synthetic) RegionAttributes(regionID string) Attributes {
	return s.attrs[regionID]
}

// Regions returns the region universe in construction order.
func (s *Synthetic) Regions() []string {
	return append([]string(nil), s.order...)
}

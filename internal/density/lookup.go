package density

// Lookup is a Provider backed by a precomputed, time-indexed density table
// with a per-region base density fallback for times missing from the table.
type Lookup struct {
	order   []string
	samples map[string]map[float64]float64
	base    map[string]float64
	attrs   map[string]Attributes
}

// NewLookup builds a lookup provider. The order slice defines the region
// universe and its stable iteration order; samples, base and attrs may be nil
// or partial.
func NewLookup(order []string, samples map[string]map[float64]float64, base map[string]float64, attrs map[string]Attributes) *Lookup {
	return &Lookup{
		order:   append([]string(nil), order...),
		samples: samples,
		base:    base,
		attrs:   attrs,
	}
}

// Density returns the tabulated density for (regionID, t), falling back to
// the region's base density when no sample exists for t.
func (l *Lookup) Density(regionID string, t float64) (float64, error) {
	if row, ok := l.samples[regionID]; ok {
		if v, ok := row[t]; ok {
			return v, nil
		}
	}
	return l.base[regionID], nil
}

// RegionAttributes returns the static attributes recorded for the region.
func (l *Lookup) RegionAttributes(regionID string) Attributes {
	return l.attrs[regionID]
}

// Regions returns the region universe in construction order.
func (l *Lookup) Regions() []string {
	return append([]string(nil), l.order...)
}

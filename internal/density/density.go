// Package density supplies per-region population density and static region
// attributes to the cascade simulator. Providers own the authoritative region
// universe for a run: any region id absent from Regions() does not exist as
// far as the simulation is concerned.
package density

// Attributes holds static per-region descriptors supplied alongside density.
type Attributes struct {
	// Vulnerability weighs how exposed the region is to downstream harm.
	Vulnerability float64
	// VenueMix maps venue categories to their relative share in the region.
	VenueMix map[string]float64
}

// Provider is the capability contract consumed by the simulator. A provider
// may be backed by a remote data source; Density errors are fatal to the run
// that triggered them.
type Provider interface {
	// Density reports the population density for a region at time t.
	Density(regionID string, t float64) (float64, error)
	// RegionAttributes returns the static attributes for a region. Unknown
	// regions yield the zero Attributes.
	RegionAttributes(regionID string) Attributes
	// Regions returns the exhaustive, stable-ordered region id universe.
	Regions() []string
}

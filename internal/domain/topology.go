package domain

import "math"

// Topology describes how zones relate spatially. Implementations must be
// total over [0, Zones()): Distance and Bearing never fail for valid indices.
type Topology interface {
	// Zones returns the number of zones, N.
	Zones() int
	// Distance returns the separation between two zones. It is 0 only
	// when a == b.
	Distance(a, b int) float64
	// Bearing returns the absolute planar bearing difference, in degrees,
	// between the reference→a and reference→b directions.
	Bearing(reference, a, b int) float64
}

// LinearTopology arranges zones along a line. Distance between distinct
// zones is |a-b|, so adjacent zones sit at distance 1 and get a large but
// finite inverse-square radiation value instead of a singularity; zero
// distance occurs only at ground zero itself.
type LinearTopology struct {
	zones int
}

// NewLinearTopology creates a linear topology over the given zone count.
func NewLinearTopology(zones int) LinearTopology {
	return LinearTopology{zones: zones}
}

func (t LinearTopology) Zones() int {
	return t.zones
}

func (t LinearTopology) Distance(a, b int) float64 {
	return math.Abs(float64(a - b))
}

func (t LinearTopology) Bearing(reference, a, b int) float64 {
	angleA := degrees(math.Atan2(float64(a-reference), 1))
	angleB := degrees(math.Atan2(float64(b-reference), 1))
	return math.Abs(angleB - angleA)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

package domain

import "math"

const (
	// RadiationCap is the maximum radiation level, in Sv/h. Ground zero is
	// always pinned to the cap regardless of yield.
	RadiationCap = 1000.0

	// DecayRate is the linear radiation decay per simulated hour.
	DecayRate = 0.1
)

// RadiationField holds per-zone radiation intensity in Sv/h. The backing
// array is allocated once at construction; Init and Decay mutate it in place.
type RadiationField struct {
	topo   Topology
	levels []float64
}

// NewRadiationField creates a zeroed field over the given topology.
func NewRadiationField(topo Topology) *RadiationField {
	return &RadiationField{
		topo:   topo,
		levels: make([]float64, topo.Zones()),
	}
}

// Init computes the initial field for a detonation of yieldKT kilotons at
// groundZero using a simplified inverse-square falloff.
func (f *RadiationField) Init(groundZero int, yieldKT float64) {
	for zone := range f.levels {
		distance := f.topo.Distance(groundZero, zone)
		if distance == 0 {
			f.levels[zone] = RadiationCap
			continue
		}
		f.levels[zone] = math.Min(yieldKT*100/(distance*distance), RadiationCap)
	}
}

// Decay applies linear decay for dtHours. Linear decay is an approximation
// valid only for small steps; levels are clamped at zero so an oversized dt
// cannot flip the sign.
func (f *RadiationField) Decay(dtHours float64) {
	factor := 1 - DecayRate*dtHours
	for zone, level := range f.levels {
		f.levels[zone] = math.Max(level*factor, 0)
	}
}

// Level returns the radiation level for one zone.
func (f *RadiationField) Level(zone int) float64 {
	return f.levels[zone]
}

// Levels returns a copy of the per-zone levels.
func (f *RadiationField) Levels() []float64 {
	out := make([]float64, len(f.levels))
	copy(out, f.levels)
	return out
}

// Max returns the peak radiation level across all zones.
func (f *RadiationField) Max() float64 {
	var max float64
	for _, level := range f.levels {
		if level > max {
			max = level
		}
	}
	return max
}

// Reset zeroes the field.
func (f *RadiationField) Reset() {
	clear(f.levels)
}

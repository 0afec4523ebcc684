package domain

import "math"

const (
	// FalloutCap is the maximum deposition intensity for any zone pair.
	FalloutCap = 100.0

	// DispersionRate is the linear fallout decay per simulated hour.
	// Fallout disperses more slowly than direct radiation decays.
	DispersionRate = 0.05
)

// WindCondition biases fallout deposition. Direction is in degrees and may
// be any real value; it is only ever fed through cosine.
type WindCondition struct {
	SpeedMS      float64 `json:"speed_m_s"`
	DirectionDeg float64 `json:"direction_deg"`
}

// FalloutModel holds the N×N deposition matrix: entry [source][target] is
// the fallout intensity deposited from one zone onto another. The diagonal
// is always zero.
type FalloutModel struct {
	topo       Topology
	deposition [][]float64
}

// NewFalloutModel creates a zeroed deposition matrix over the topology.
func NewFalloutModel(topo Topology) *FalloutModel {
	n := topo.Zones()
	deposition := make([][]float64, n)
	for i := range deposition {
		deposition[i] = make([]float64, n)
	}
	return &FalloutModel{topo: topo, deposition: deposition}
}

// Init computes wind-biased deposition for every ordered zone pair. Wind
// aligned with the source→target bearing amplifies deposition; crosswind or
// upwind damps it toward a 0.1× floor, so fallout never fully vanishes
// downrange.
func (m *FalloutModel) Init(groundZero int, yieldKT float64, wind WindCondition) {
	n := m.topo.Zones()
	for source := 0; source < n; source++ {
		for target := 0; target < n; target++ {
			if source == target {
				m.deposition[source][target] = 0
				continue
			}
			distance := m.topo.Distance(source, target)
			angle := m.topo.Bearing(groundZero, source, target)
			fallout := yieldKT * windFactor(angle, wind) / math.Pow(distance, 1.5)
			m.deposition[source][target] = math.Min(fallout, FalloutCap)
		}
	}
}

// windFactor converts bearing/wind alignment into a deposition multiplier.
func windFactor(angleDeg float64, wind WindCondition) float64 {
	alignment := math.Cos(radians(angleDeg - wind.DirectionDeg))
	return math.Max(0.1, 1+alignment*wind.SpeedMS/10)
}

// Decay disperses every matrix entry linearly for dtHours, clamped at zero.
func (m *FalloutModel) Decay(dtHours float64) {
	factor := 1 - DispersionRate*dtHours
	for _, row := range m.deposition {
		for j, v := range row {
			row[j] = math.Max(v*factor, 0)
		}
	}
}

// Deposition returns a copy of the matrix.
func (m *FalloutModel) Deposition() [][]float64 {
	out := make([][]float64, len(m.deposition))
	for i, row := range m.deposition {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// Reset zeroes the matrix.
func (m *FalloutModel) Reset() {
	for _, row := range m.deposition {
		clear(row)
	}
}

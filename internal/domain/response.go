package domain

import "math"

// Evacuation hysteresis thresholds, in Sv/h. A zone enters the evacuation
// set above the enter level and leaves below the exit level; membership is
// preserved inside the [exit, enter] dead band.
const (
	EvacuationEnterLevel = 1.0
	EvacuationExitLevel  = 0.1
)

// Protocol categories. All four keys are always present in the map returned
// by Protocols, even when their action lists are empty.
const (
	CategoryPublicSafety    = "public_safety"
	CategoryMedicalResponse = "medical_response"
	CategoryInfrastructure  = "infrastructure"
	CategoryCommunication   = "communication"
)

// ResponsePlan owns the hysteretic evacuation set and the per-zone resource
// allocations derived from the radiation field. Population factors default
// to 1.0 per zone and survive Reset; they are configuration, not incident
// state.
type ResponsePlan struct {
	evacuated  []bool
	medical    []float64
	shelter    []float64
	population []float64
}

// NewResponsePlan creates a plan for the given zone count with all
// population factors at 1.0.
func NewResponsePlan(zones int) *ResponsePlan {
	p := &ResponsePlan{
		evacuated:  make([]bool, zones),
		medical:    make([]float64, zones),
		shelter:    make([]float64, zones),
		population: make([]float64, zones),
	}
	for i := range p.population {
		p.population[i] = 1.0
	}
	return p
}

// SetPopulationFactor sets a zone's population weighting and recomputes its
// shelter capacity.
func (p *ResponsePlan) SetPopulationFactor(zone int, factor float64) error {
	if zone < 0 || zone >= len(p.population) {
		return ErrInvalidZone
	}
	p.population[zone] = factor
	p.shelter[zone] = factor * 1000
	return nil
}

// Update recomputes evacuation membership and resource allocations from the
// current radiation levels.
func (p *ResponsePlan) Update(levels []float64) {
	for zone, level := range levels {
		switch {
		case level > EvacuationEnterLevel:
			p.evacuated[zone] = true
		case level < EvacuationExitLevel:
			p.evacuated[zone] = false
		}
		// Inside the dead band, prior membership stands.

		p.medical[zone] = p.population[zone] * math.Min(level/10, 1) * 100
		p.shelter[zone] = p.population[zone] * 1000
	}
}

// IsEvacuated reports whether a zone is in the evacuation set.
func (p *ResponsePlan) IsEvacuated(zone int) bool {
	return p.evacuated[zone]
}

// EvacuationZones returns the evacuation set as ascending zone indices.
func (p *ResponsePlan) EvacuationZones() []int {
	zones := make([]int, 0)
	for zone, evacuated := range p.evacuated {
		if evacuated {
			zones = append(zones, zone)
		}
	}
	return zones
}

// MedicalResourcesAt returns the medical allocation for one zone.
func (p *ResponsePlan) MedicalResourcesAt(zone int) float64 {
	return p.medical[zone]
}

// ShelterCapacityAt returns the shelter capacity for one zone.
func (p *ResponsePlan) ShelterCapacityAt(zone int) float64 {
	return p.shelter[zone]
}

// MedicalResources returns a copy of the per-zone medical allocations.
func (p *ResponsePlan) MedicalResources() []float64 {
	out := make([]float64, len(p.medical))
	copy(out, p.medical)
	return out
}

// ShelterCapacity returns a copy of the per-zone shelter capacities.
func (p *ResponsePlan) ShelterCapacity() []float64 {
	out := make([]float64, len(p.shelter))
	copy(out, p.shelter)
	return out
}

// Reset clears the evacuation set and resource allocations. Population
// factors are kept.
func (p *ResponsePlan) Reset() {
	clear(p.evacuated)
	clear(p.medical)
	clear(p.shelter)
}

// Protocols returns the emergency response actions for a threat level,
// keyed by category. Categories populate additively: HIGH activates public
// safety, SEVERE and above additionally activate the remaining three.
func Protocols(level ThreatLevel) map[string][]string {
	protocols := map[string][]string{
		CategoryPublicSafety:    {},
		CategoryMedicalResponse: {},
		CategoryInfrastructure:  {},
		CategoryCommunication:   {},
	}

	if level >= ThreatHigh {
		protocols[CategoryPublicSafety] = append(protocols[CategoryPublicSafety],
			"Activate emergency broadcast system",
			"Implement traffic control for evacuation routes",
			"Deploy radiation monitoring teams",
		)
	}

	if level >= ThreatSevere {
		protocols[CategoryMedicalResponse] = append(protocols[CategoryMedicalResponse],
			"Activate mass casualty protocols",
			"Deploy radiation treatment teams",
			"Prepare decontamination centers",
		)
		protocols[CategoryInfrastructure] = append(protocols[CategoryInfrastructure],
			"Shut down critical infrastructure in affected zones",
			"Activate backup power systems",
			"Secure water and food supplies",
		)
		protocols[CategoryCommunication] = append(protocols[CategoryCommunication],
			"Activate emergency communication networks",
			"Coordinate with federal agencies",
			"Implement public information hotlines",
		)
	}

	return protocols
}

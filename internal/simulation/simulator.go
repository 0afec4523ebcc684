// Package simulation orchestrates the domain components into a single
// incident state machine: IDLE until triggered, ACTIVE until explicitly
// reset. An incident never auto-terminates; radiation decays asymptotically
// toward zero but the scenario stays ACTIVE.
//
// The simulator is single-threaded and holds no lock. A concurrent host
// must serialize all mutating calls; see the runner package.
package simulation

import (
	"fmt"
	"math"

	"github.com/couchcryptid/fallout-sim-service/internal/domain"
)

// Simulator owns all scenario state as a single aggregate: the radiation
// field, the fallout matrix, the threat level, and the response plan.
type Simulator struct {
	topo    domain.Topology
	field   *domain.RadiationField
	fallout *domain.FalloutModel
	plan    *domain.ResponsePlan

	wind   domain.WindCondition
	threat domain.ThreatLevel

	active       bool
	incidentID   string
	groundZero   int
	yieldKT      float64
	elapsedHours float64
}

// New creates an idle simulator over a linear topology of the given size.
func New(zones int) (*Simulator, error) {
	if zones <= 0 {
		return nil, fmt.Errorf("zone count %d: %w", zones, domain.ErrInvalidZone)
	}
	return NewWithTopology(domain.NewLinearTopology(zones)), nil
}

// NewWithTopology creates an idle simulator over a custom topology.
func NewWithTopology(topo domain.Topology) *Simulator {
	return &Simulator{
		topo:    topo,
		field:   domain.NewRadiationField(topo),
		fallout: domain.NewFalloutModel(topo),
		plan:    domain.NewResponsePlan(topo.Zones()),
	}
}

// Zones returns the zone count.
func (s *Simulator) Zones() int {
	return s.topo.Zones()
}

// Active reports whether an incident is in progress.
func (s *Simulator) Active() bool {
	return s.active
}

// ThreatLevel returns the current system-wide threat level.
func (s *Simulator) ThreatLevel() domain.ThreatLevel {
	return s.threat
}

// Trigger starts an incident at groundZero with the given yield. Triggering
// while ACTIVE overwrites the prior incident wholesale; there is no
// superposition of incidents. Validation happens before any mutation.
func (s *Simulator) Trigger(groundZero int, yieldKT float64) (domain.IncidentSummary, error) {
	if groundZero < 0 || groundZero >= s.topo.Zones() {
		return domain.IncidentSummary{}, fmt.Errorf(
			"ground zero %d outside [0,%d): %w", groundZero, s.topo.Zones(), domain.ErrInvalidZone)
	}
	if yieldKT < 0 {
		return domain.IncidentSummary{}, fmt.Errorf("yield %g kt: %w", yieldKT, domain.ErrInvalidYield)
	}

	s.active = true
	s.groundZero = groundZero
	s.yieldKT = yieldKT
	s.elapsedHours = 0
	triggeredAt := clock.Now()
	s.incidentID = domain.GenerateIncidentID(groundZero, yieldKT, triggeredAt)

	s.field.Init(groundZero, yieldKT)
	s.fallout.Init(groundZero, yieldKT, s.wind)
	s.threat = domain.ClassifyThreat(s.field.Max())

	// Hysteresis state does not carry across incidents.
	s.plan.Reset()
	s.plan.Update(s.field.Levels())

	return domain.IncidentSummary{
		IncidentID:       s.incidentID,
		GroundZero:       groundZero,
		YieldKT:          yieldKT,
		InitialRadiation: s.field.Levels(),
		ThreatLevel:      s.threat,
		EvacuationZones:  s.plan.EvacuationZones(),
		ElapsedHours:     0,
		TriggeredAt:      triggeredAt,
	}, nil
}

// Advance steps the scenario by dtHours: field decay, fallout dispersion,
// threat reclassification, response update, in that order. When IDLE it is
// a no-op returning the current (zeroed) snapshot. Negative dt is rejected
// in any state.
func (s *Simulator) Advance(dtHours float64) (domain.ScenarioSnapshot, error) {
	if dtHours < 0 {
		return domain.ScenarioSnapshot{}, fmt.Errorf("dt %g h: %w", dtHours, domain.ErrInvalidTimeStep)
	}
	if !s.active {
		return s.Snapshot(), nil
	}

	s.elapsedHours += dtHours
	s.field.Decay(dtHours)
	s.fallout.Decay(dtHours)
	s.threat = domain.ClassifyThreat(s.field.Max())
	s.plan.Update(s.field.Levels())

	return s.Snapshot(), nil
}

// SetWind records wind conditions for fallout modeling. The deposition
// matrix is computed once per incident, so a change applies to future
// Trigger calls only. Negative speeds are clamped to zero.
func (s *Simulator) SetWind(speedMS, directionDeg float64) {
	s.wind = domain.WindCondition{
		SpeedMS:      math.Max(speedMS, 0),
		DirectionDeg: directionDeg,
	}
}

// Wind returns the current wind conditions.
func (s *Simulator) Wind() domain.WindCondition {
	return s.wind
}

// Snapshot returns the current scenario state.
func (s *Simulator) Snapshot() domain.ScenarioSnapshot {
	return domain.ScenarioSnapshot{
		IncidentID:       s.incidentID,
		ElapsedHours:     s.elapsedHours,
		RadiationLevels:  s.field.Levels(),
		ThreatLevel:      s.threat,
		EvacuationZones:  s.plan.EvacuationZones(),
		MedicalResources: s.plan.MedicalResources(),
		ShelterCapacity:  s.plan.ShelterCapacity(),
		CapturedAt:       clock.Now(),
	}
}

// ZoneStatus returns the safety readout for one zone.
func (s *Simulator) ZoneStatus(zone int) (domain.ZoneSafety, error) {
	if zone < 0 || zone >= s.topo.Zones() {
		return domain.ZoneSafety{}, fmt.Errorf(
			"zone %d outside [0,%d): %w", zone, s.topo.Zones(), domain.ErrInvalidZone)
	}

	level := s.field.Level(zone)
	status, recommendation := domain.ClassifySafety(level)

	return domain.ZoneSafety{
		Zone:             zone,
		RadiationLevel:   level,
		SafetyStatus:     status,
		Recommendation:   recommendation,
		IsEvacuated:      s.plan.IsEvacuated(zone),
		MedicalResources: s.plan.MedicalResourcesAt(zone),
		ShelterCapacity:  s.plan.ShelterCapacityAt(zone),
	}, nil
}

// Protocols returns the response actions for the current threat level. All
// four categories are always present.
func (s *Simulator) Protocols() map[string][]string {
	return domain.Protocols(s.threat)
}

// FalloutDeposition returns a copy of the current deposition matrix.
func (s *Simulator) FalloutDeposition() [][]float64 {
	return s.fallout.Deposition()
}

// SetPopulationFactor sets a zone's population weighting for resource
// allocation.
func (s *Simulator) SetPopulationFactor(zone int, factor float64) error {
	if zone < 0 || zone >= s.topo.Zones() {
		return fmt.Errorf("zone %d outside [0,%d): %w", zone, s.topo.Zones(), domain.ErrInvalidZone)
	}
	return s.plan.SetPopulationFactor(zone, factor)
}

// Reset returns the simulator to IDLE: all owned arrays zeroed, incident
// metadata and wind cleared. Population factors are configuration and are
// kept.
func (s *Simulator) Reset() {
	s.active = false
	s.incidentID = ""
	s.groundZero = 0
	s.yieldKT = 0
	s.elapsedHours = 0
	s.wind = domain.WindCondition{}
	s.threat = domain.ThreatNormal
	s.field.Reset()
	s.fallout.Reset()
	s.plan.Reset()
}

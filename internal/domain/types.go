package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// IncidentSummary is returned by a successful trigger.
type IncidentSummary struct {
	IncidentID       string      `json:"incident_id"`
	GroundZero       int         `json:"ground_zero"`
	YieldKT          float64     `json:"yield_kt"`
	InitialRadiation []float64   `json:"initial_radiation"`
	ThreatLevel      ThreatLevel `json:"threat_level"`
	EvacuationZones  []int       `json:"evacuation_zones"`
	ElapsedHours     float64     `json:"elapsed_hours"`
	TriggeredAt      time.Time   `json:"triggered_at"`
}

// ScenarioSnapshot is the full per-step state readout. The fallout matrix is
// reported separately (see FalloutModel.Deposition); field and fallout are
// never combined into one figure.
type ScenarioSnapshot struct {
	IncidentID       string      `json:"incident_id,omitempty"`
	ElapsedHours     float64     `json:"elapsed_hours"`
	RadiationLevels  []float64   `json:"radiation_levels"`
	ThreatLevel      ThreatLevel `json:"threat_level"`
	EvacuationZones  []int       `json:"evacuation_zones"`
	MedicalResources []float64   `json:"medical_resources"`
	ShelterCapacity  []float64   `json:"shelter_capacity"`
	CapturedAt       time.Time   `json:"captured_at"`
}

// ZoneSafety is the per-zone safety readout for user-facing display.
type ZoneSafety struct {
	Zone             int          `json:"zone"`
	RadiationLevel   float64      `json:"radiation_level"`
	SafetyStatus     SafetyStatus `json:"safety_status"`
	Recommendation   string       `json:"recommendation"`
	IsEvacuated      bool         `json:"is_evacuated"`
	MedicalResources float64      `json:"medical_resources"`
	ShelterCapacity  float64      `json:"shelter_capacity"`
}

// GenerateIncidentID produces a deterministic ID from the trigger parameters
// and trigger time. Re-publishing snapshots of the same incident reuses the
// same key, so downstream consumers can upsert idempotently.
func GenerateIncidentID(groundZero int, yieldKT float64, triggeredAt time.Time) string {
	input := fmt.Sprintf("%d|%g|%d", groundZero, yieldKT, triggeredAt.UTC().UnixNano())
	hash := sha256.Sum256([]byte(input))
	return "incident-" + hex.EncodeToString(hash[:8])
}

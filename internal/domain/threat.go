package domain

import (
	"encoding/json"
	"fmt"
)

// ThreatLevel is the five-tier system-wide severity classification, derived
// from peak radiation. It is ordered: comparisons like level >= ThreatHigh
// are meaningful.
type ThreatLevel int

const (
	ThreatNormal ThreatLevel = iota
	ThreatElevated
	ThreatHigh
	ThreatSevere
	ThreatCritical
)

var threatNames = [...]string{"NORMAL", "ELEVATED", "HIGH", "SEVERE", "CRITICAL"}

func (l ThreatLevel) String() string {
	if l < ThreatNormal || l > ThreatCritical {
		return fmt.Sprintf("ThreatLevel(%d)", int(l))
	}
	return threatNames[l]
}

// MarshalJSON emits the level name, e.g. "SEVERE".
func (l ThreatLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON parses a level name produced by MarshalJSON.
func (l *ThreatLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, candidate := range threatNames {
		if candidate == name {
			*l = ThreatLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown threat level %q", name)
}

// ClassifyThreat maps peak radiation (Sv/h) to a threat level. It is a
// total, monotonic step function with no hysteresis; hysteresis lives only
// in the evacuation set.
func ClassifyThreat(maxRadiation float64) ThreatLevel {
	switch {
	case maxRadiation < 0.1:
		return ThreatNormal
	case maxRadiation < 1.0:
		return ThreatElevated
	case maxRadiation < 10.0:
		return ThreatHigh
	case maxRadiation < 100.0:
		return ThreatSevere
	default:
		return ThreatCritical
	}
}

package domain

// SafetyStatus is the per-zone presentation tier. It is a finer-grained
// classification than the system threat level and thresholded independently.
type SafetyStatus string

const (
	SafetySafe     SafetyStatus = "SAFE"
	SafetyCaution  SafetyStatus = "CAUTION"
	SafetyDanger   SafetyStatus = "DANGER"
	SafetyCritical SafetyStatus = "CRITICAL"
)

// ClassifySafety buckets a zone's radiation level (Sv/h) into a safety
// status and its fixed recommendation string.
func ClassifySafety(radiation float64) (SafetyStatus, string) {
	switch {
	case radiation < 0.01:
		return SafetySafe, "Normal activities permitted"
	case radiation < 0.1:
		return SafetyCaution, "Limit outdoor activities"
	case radiation < 1.0:
		return SafetyDanger, "Seek shelter immediately"
	default:
		return SafetyCritical, "Evacuate immediately"
	}
}

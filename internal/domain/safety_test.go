package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySafety(t *testing.T) {
	tests := []struct {
		name           string
		radiation      float64
		expected       SafetyStatus
		recommendation string
	}{
		{"zero", 0, SafetySafe, "Normal activities permitted"},
		{"just below caution", 0.0099, SafetySafe, "Normal activities permitted"},
		{"caution boundary", 0.01, SafetyCaution, "Limit outdoor activities"},
		{"danger boundary", 0.1, SafetyDanger, "Seek shelter immediately"},
		{"just below critical", 0.999, SafetyDanger, "Seek shelter immediately"},
		{"critical boundary", 1.0, SafetyCritical, "Evacuate immediately"},
		{"ground zero", RadiationCap, SafetyCritical, "Evacuate immediately"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, recommendation := ClassifySafety(tt.radiation)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.recommendation, recommendation)
		})
	}
}

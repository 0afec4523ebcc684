package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIncidentID(t *testing.T) {
	at := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, GenerateIncidentID(2, 5, at), GenerateIncidentID(2, 5, at))
	})

	t.Run("prefix", func(t *testing.T) {
		assert.Contains(t, GenerateIncidentID(2, 5, at), "incident-")
	})

	t.Run("distinct parameters give distinct IDs", func(t *testing.T) {
		base := GenerateIncidentID(2, 5, at)
		assert.NotEqual(t, base, GenerateIncidentID(3, 5, at))
		assert.NotEqual(t, base, GenerateIncidentID(2, 50, at))
		assert.NotEqual(t, base, GenerateIncidentID(2, 5, at.Add(time.Nanosecond)))
	})
}

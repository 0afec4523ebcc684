package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRadiationFieldInit(t *testing.T) {
	t.Run("five zones, 5 kt at center", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(5))
		field.Init(2, 5)

		// Ground zero pinned to the cap; neighbors follow inverse square:
		// 5*100/1² = 500 at distance 1, 5*100/2² = 125 at distance 2.
		expected := []float64{125, 500, 1000, 500, 125}
		if diff := cmp.Diff(expected, field.Levels()); diff != "" {
			t.Errorf("levels mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ground zero is lethal regardless of yield", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(3))
		field.Init(0, 0)

		assert.Equal(t, RadiationCap, field.Level(0))
		assert.Equal(t, 0.0, field.Level(1))
	})

	t.Run("large yield capped everywhere", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(3))
		field.Init(1, 1e6)

		for zone := 0; zone < 3; zone++ {
			assert.Equal(t, RadiationCap, field.Level(zone), "zone %d", zone)
		}
	})
}

func TestRadiationFieldDecay(t *testing.T) {
	t.Run("never increases any level", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(5))
		field.Init(2, 5)

		before := field.Levels()
		field.Decay(0.5)
		for zone, level := range field.Levels() {
			assert.LessOrEqual(t, level, before[zone], "zone %d", zone)
		}
	})

	t.Run("linear rate", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(1))
		field.Init(0, 5)

		field.Decay(0.5)
		// 1000 * (1 - 0.1*0.5)
		assert.InDelta(t, 950.0, field.Level(0), 1e-9)
	})

	t.Run("approaches zero but never exactly", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(1))
		field.Init(0, 5)

		for i := 0; i < 1000; i++ {
			field.Decay(1.0)
		}
		assert.Greater(t, field.Level(0), 0.0)
	})

	t.Run("oversized dt clamps at zero instead of going negative", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(1))
		field.Init(0, 5)

		field.Decay(20) // factor would be -1
		assert.Equal(t, 0.0, field.Level(0))
	})

	t.Run("zero stays zero", func(t *testing.T) {
		field := NewRadiationField(NewLinearTopology(2))
		field.Decay(0.5)
		assert.Equal(t, 0.0, field.Level(0))
	})
}

func TestRadiationFieldMax(t *testing.T) {
	field := NewRadiationField(NewLinearTopology(5))
	assert.Equal(t, 0.0, field.Max())

	field.Init(2, 5)
	assert.Equal(t, RadiationCap, field.Max())
}

func TestRadiationFieldReset(t *testing.T) {
	field := NewRadiationField(NewLinearTopology(5))
	field.Init(2, 5)
	field.Reset()

	for zone, level := range field.Levels() {
		assert.Equal(t, 0.0, level, "zone %d", zone)
	}
}

func TestRadiationFieldLevelsIsCopy(t *testing.T) {
	field := NewRadiationField(NewLinearTopology(3))
	field.Init(1, 5)

	levels := field.Levels()
	levels[0] = -1
	assert.NotEqual(t, -1.0, field.Level(0))
}

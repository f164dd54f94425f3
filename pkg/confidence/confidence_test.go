package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffective(t *testing.T) {
	tests := []struct {
		name             string
		raw              float64
		distinctSessions int
		want             float64
	}{
		{
			name:             "single session caps at ceiling",
			raw:              0.9,
			distinctSessions: 1,
			want:             0.7,
		},
		{
			name:             "single session below ceiling passes through",
			raw:              0.5,
			distinctSessions: 1,
			want:             0.5,
		},
		{
			name:             "zero sessions treated as single",
			raw:              0.9,
			distinctSessions: 0,
			want:             0.7,
		},
		{
			name:             "two sessions earn one bonus step",
			raw:              0.7,
			distinctSessions: 2,
			want:             0.75,
		},
		{
			name:             "three sessions reach the override threshold",
			raw:              0.7,
			distinctSessions: 3,
			want:             0.8,
		},
		{
			name:             "bonus caps at five sessions",
			raw:              0.7,
			distinctSessions: 5,
			want:             0.9,
		},
		{
			name:             "bonus does not grow past the cap",
			raw:              0.7,
			distinctSessions: 12,
			want:             0.9,
		},
		{
			name:             "total never exceeds the confidence cap",
			raw:              0.95,
			distinctSessions: 10,
			want:             1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effective(tt.raw, tt.distinctSessions)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRawAdjustments(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		raw  float64
		want float64
	}{
		{name: "reinforce adds its delta", fn: Reinforce, raw: 0.5, want: 0.6},
		{name: "reinforce caps at one", fn: Reinforce, raw: 0.95, want: 1.0},
		{name: "correct adds its delta", fn: Correct, raw: 0.5, want: 0.7},
		{name: "correct caps at one", fn: Correct, raw: 0.9, want: 1.0},
		{name: "contradict resets regardless of raw", fn: Contradict, raw: 0.9, want: 0.3},
		{name: "contradict can raise a floor value", fn: Contradict, raw: 0.1, want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fn(tt.raw), 1e-9)
		})
	}
}

func TestMeetsOverrideThreshold(t *testing.T) {
	// 0.7 + 2*0.05 lands on the threshold through float arithmetic; the
	// comparison must not lose it to rounding.
	assert.True(t, MeetsOverrideThreshold(Effective(0.7, 3)))

	assert.True(t, MeetsOverrideThreshold(0.8))
	assert.True(t, MeetsOverrideThreshold(0.95))
	assert.False(t, MeetsOverrideThreshold(0.79))
	assert.False(t, MeetsOverrideThreshold(0.7))
}

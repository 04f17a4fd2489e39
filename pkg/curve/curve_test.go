package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyframes_Evaluate(t *testing.T) {
	k := NewKeyframes(
		Key{Time: 1, Value: 0.2},
		Key{Time: 0, Value: 0},
		Key{Time: 0.5, Value: 0.05},
	)
	require.NoError(t, k.Validate())

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"before first key", -1, 0},
		{"first key", 0, 0},
		{"between keys", 0.25, 0.025},
		{"middle key", 0.5, 0.05},
		{"upper segment", 0.75, 0.125},
		{"last key", 1, 0.2},
		{"after last key", 3, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, k.Evaluate(tt.x), 1e-12)
		})
	}
}

func TestKeyframes_Validate(t *testing.T) {
	assert.ErrorIs(t, Keyframes{}.Validate(), ErrNoKeys)
	assert.ErrorIs(t, Keyframes{{0, 1}, {0, 2}}.Validate(), ErrUnsortedKeys)
	assert.ErrorIs(t, Keyframes{{1, 1}, {0, 2}}.Validate(), ErrUnsortedKeys)
	assert.NoError(t, Keyframes{{0.5, 1}}.Validate())
}

func TestKeyframes_Monotone(t *testing.T) {
	assert.True(t, Keyframes{{0, 0}, {1, 1}}.Monotone())
	assert.True(t, Keyframes{{0, 1}, {1, 1}}.Monotone())
	assert.False(t, Keyframes{{0, 1}, {1, 0.5}}.Monotone())
}

func TestKeyframes_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Keyframes(nil).Evaluate(0.3))
}

func TestSimpleCurves(t *testing.T) {
	assert.Equal(t, 2.5, Constant(2.5).Evaluate(100))

	l := Linear{From: 1, To: 3}
	assert.Equal(t, 1.0, l.Evaluate(-2))
	assert.Equal(t, 2.0, l.Evaluate(0.5))
	assert.Equal(t, 3.0, l.Evaluate(7))

	var f Curve = Func(func(x float64) float64 { return x * x })
	assert.Equal(t, 9.0, f.Evaluate(3))
}

package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Helpers(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 3, Y: 4}

	assert.InDelta(t, 5.0, Dist(a, b), 1e-9)
	assert.InDelta(t, 1.0, b.Normalized().Len(), 1e-9)
	assert.Equal(t, Vec2{}, Vec2{}.Normalized())
	assert.InDelta(t, math.Pi/2, AngleTo(a, Vec2{X: 0, Y: 10}), 1e-9)
	assert.Equal(t, Vec2{X: 6, Y: 8}, b.Scale(2))
	assert.Equal(t, Vec2{X: 2, Y: 3}, b.Sub(Vec2{X: 1, Y: 1}))
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(50, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
}

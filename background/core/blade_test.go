package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBladeMesh(t *testing.T) {
	vertices, indices := BladeMesh()
	assert.Len(t, vertices, 10)
	assert.Len(t, indices, 24)

	var minY, maxY float32 = 10, -10
	for _, v := range vertices {
		minY = min(minY, v.Pos[1])
		maxY = max(maxY, v.Pos[1])
		assert.InDelta(t, BladeWidth/2, abs32(v.Pos[0]), 1e-6)
		assert.Zero(t, v.Pos[2])
	}
	assert.InDelta(t, 0, minY, 1e-6)
	assert.InDelta(t, BladeHeight, maxY, 1e-6)

	for _, i := range indices {
		assert.Less(t, int(i), len(vertices))
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCache_MemoizesOnKey(t *testing.T) {
	cache := NewSeededFieldCache(1)
	cfg := RenderConfig{GrassCount: 1000, LODEnabled: true}

	first, built := cache.Get(cfg)
	require.True(t, built)
	require.NotNil(t, first)
	assert.Equal(t, 1000, first.Count())
	assert.Equal(t, uint64(1), first.Generation)
	assert.Equal(t, FieldBounds(300, 140), first.Bounds)

	// Unrelated fields do not invalidate.
	cfg.WindComplexity = 0.2
	cfg.RenderDistance = 10
	again, built := cache.Get(cfg)
	assert.False(t, built)
	assert.Same(t, first, again)
}

func TestFieldCache_RegeneratesWholesale(t *testing.T) {
	cache := NewSeededFieldCache(2)
	first, _ := cache.Get(RenderConfig{GrassCount: 500, LODEnabled: true})
	snapshot := append([]float32(nil), first.Transforms...)

	second, built := cache.Get(RenderConfig{GrassCount: 500, LODEnabled: false})
	require.True(t, built)
	assert.NotSame(t, first, second)
	assert.Equal(t, uint64(2), second.Generation)
	assert.Len(t, second.Transforms, 500*FloatsPerInstance)
	assert.Equal(t, FieldBounds(150, 80), second.Bounds)

	// The old field is left untouched.
	assert.Equal(t, snapshot, first.Transforms)

	third, built := cache.Get(RenderConfig{GrassCount: 200, LODEnabled: false})
	require.True(t, built)
	assert.Len(t, third.Transforms, 200*FloatsPerInstance)
	assert.Same(t, third, cache.Current())
}

func TestFieldCache_Invalidate(t *testing.T) {
	cache := NewFieldCache(nil)
	cfg := RenderConfig{GrassCount: 64}
	first, _ := cache.Get(cfg)

	cache.Invalidate()
	assert.Nil(t, cache.Current())

	second, built := cache.Get(cfg)
	assert.True(t, built)
	assert.Equal(t, len(first.Transforms), len(second.Transforms))
	assert.Equal(t, 0, (*Field)(nil).Count())
}

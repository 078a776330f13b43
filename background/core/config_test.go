package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFor_EveryTierHasAnEntry(t *testing.T) {
	assert.Len(t, Tiers(), 4)
	for _, tier := range Tiers() {
		cfg := ConfigFor(tier)
		assert.Positive(t, cfg.GrassCount, "tier %s", tier)
		assert.Positive(t, cfg.CloudCount, "tier %s", tier)
		assert.Positive(t, cfg.PixelRatio, "tier %s", tier)
		assert.Positive(t, cfg.RenderDistance, "tier %s", tier)
		assert.GreaterOrEqual(t, cfg.WindComplexity, float32(0), "tier %s", tier)
		assert.LessOrEqual(t, cfg.WindComplexity, float32(1), "tier %s", tier)
	}
}

func TestConfigFor_DecreasingCost(t *testing.T) {
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		prev, cur := ConfigFor(tiers[i-1]), ConfigFor(tiers[i])
		assert.Less(t, cur.GrassCount, prev.GrassCount)
		assert.LessOrEqual(t, cur.RenderDistance, prev.RenderDistance)
	}
}

func TestConfigFor_Values(t *testing.T) {
	high := ConfigFor(TierHigh)
	assert.Equal(t, 450000, high.GrassCount)
	assert.True(t, high.Antialiasing)
	assert.Equal(t, float32(90), high.RenderDistance)

	low := ConfigFor(TierLow)
	assert.Equal(t, 50000, low.GrassCount)
	assert.False(t, low.LODEnabled)

	assert.Equal(t, ConfigFor(TierMedium), ConfigFor(Tier(42)))
}

func TestConfigTable_PositionalOrder(t *testing.T) {
	assert.Len(t, renderConfigs, int(tierCount))
	counts := map[Tier]int{TierHigh: 450000, TierMedium: 100000, TierLow: 50000, TierMinimal: 20000}
	for tier, want := range counts {
		assert.Equal(t, want, renderConfigs[tier].GrassCount, "tier %s", tier)
	}
	assert.Equal(t, float32(0.3), renderConfigs[TierMinimal].WindComplexity)
	assert.Equal(t, float32(1.5), renderConfigs[TierMedium].PixelRatio)
}

func TestRenderConfig_Derived(t *testing.T) {
	high := ConfigFor(TierHigh)
	x, z := high.FieldRange()
	assert.Equal(t, float32(300), x)
	assert.Equal(t, float32(140), z)
	assert.Equal(t, uint32(4), high.SampleCount())
	assert.Equal(t, float32(1.25), high.EffectivePixelRatio(1.25))
	assert.Equal(t, float32(2), high.EffectivePixelRatio(3))
	assert.Equal(t, float32(1), high.EffectivePixelRatio(0))

	low := ConfigFor(TierLow)
	x, z = low.FieldRange()
	assert.Equal(t, float32(150), x)
	assert.Equal(t, float32(80), z)
	assert.Equal(t, uint32(1), low.SampleCount())
	assert.Equal(t, FieldKey{Count: 50000, LOD: false}, low.FieldKey())
}

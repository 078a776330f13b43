package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	desktopUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148"
)

func TestClassify_Scenarios(t *testing.T) {
	cases := []struct {
		name   string
		s      Signals
		score  int
		expect Tier
	}{
		{"workstation", Signals{HardwareConcurrency: 16, DeviceMemoryGB: 16, UserAgent: desktopUA, Available: true}, 6, TierHigh},
		{"weak phone", Signals{HardwareConcurrency: 2, DeviceMemoryGB: 2, UserAgent: iphoneUA, Available: true}, 0, TierLow},
		{"laptop", Signals{HardwareConcurrency: 4, DeviceMemoryGB: 4, UserAgent: desktopUA, Available: true}, 4, TierMedium},
		{"strong phone", Signals{HardwareConcurrency: 8, DeviceMemoryGB: 8, UserAgent: iphoneUA, Available: true}, 4, TierMedium},
		{"mixed", Signals{HardwareConcurrency: 8, DeviceMemoryGB: 4, UserAgent: desktopUA, Available: true}, 5, TierHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.score, Score(tc.s))
			assert.Equal(t, tc.expect, Classify(tc.s))
		})
	}
}

func TestClassify_MissingSignalsUseDefaults(t *testing.T) {
	s := Signals{Available: true, UserAgent: desktopUA}
	assert.Equal(t, 4, Score(s), "defaults are 4 cores and 4GB")
	assert.Equal(t, TierMedium, Classify(s))

	s = Signals{HardwareConcurrency: -3, DeviceMemoryGB: -1, Available: true}
	assert.Equal(t, 4, Score(s))
}

func TestClassify_UnavailableEnvironment(t *testing.T) {
	s := Signals{HardwareConcurrency: 64, DeviceMemoryGB: 64}
	assert.Equal(t, TierMedium, Classify(s))
}

func TestClassify_NeverMinimal(t *testing.T) {
	for _, cores := range []int{0, 1, 2, 3, 4, 6, 8, 12, 16, 128} {
		for _, mem := range []float64{0, 0.25, 0.5, 1, 2, 4, 8, 16, 32} {
			for _, ua := range []string{"", desktopUA, iphoneUA} {
				tier := Classify(Signals{HardwareConcurrency: cores, DeviceMemoryGB: mem, UserAgent: ua, Available: true})
				assert.Contains(t, []Tier{TierHigh, TierMedium, TierLow}, tier)
			}
		}
	}
}

func TestIsMobileUserAgent(t *testing.T) {
	assert.True(t, IsMobileUserAgent(iphoneUA))
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (Linux; ANDROID 14; Pixel 8)"))
	assert.True(t, IsMobileUserAgent("BlackBerry9700"))
	assert.False(t, IsMobileUserAgent(desktopUA))
	assert.False(t, IsMobileUserAgent(""))
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers() {
		got, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}

	got, err := ParseTier("  HIGH ")
	require.NoError(t, err)
	assert.Equal(t, TierHigh, got)

	_, err = ParseTier("ultra")
	assert.ErrorIs(t, err, ErrUnknownTier)
	assert.Equal(t, "Tier(9)", Tier(9).String())
}

package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Tier is a performance profile chosen once per session.
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
	TierMinimal

	tierCount
)

var ErrUnknownTier = errors.New("unknown performance tier")

var tierNames = [tierCount]string{
	TierHigh:    "high",
	TierMedium:  "medium",
	TierLow:     "low",
	TierMinimal: "minimal",
}

func (t Tier) String() string {
	if t < 0 || t >= tierCount {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t Tier) Valid() bool {
	return t >= 0 && t < tierCount
}

// ParseTier accepts the lowercase tier names, ignoring surrounding space and case.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return TierMedium, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Tiers lists every tier in table order.
func Tiers() []Tier {
	out := make([]Tier, 0, tierCount)
	for t := Tier(0); t < tierCount; t++ {
		out = append(out, t)
	}
	return out
}

const (
	defaultConcurrency = 4
	defaultMemoryGB    = 4
)

// Signals are the environment readings the classifier works from.
// Available is false when no navigator-like source exists (server side).
type Signals struct {
	HardwareConcurrency int
	DeviceMemoryGB      float64
	UserAgent           string
	Available           bool
}

// withDefaults substitutes the documented defaults for missing readings.
func (s Signals) withDefaults() Signals {
	if s.HardwareConcurrency <= 0 {
		s.HardwareConcurrency = defaultConcurrency
	}
	if s.DeviceMemoryGB <= 0 {
		s.DeviceMemoryGB = defaultMemoryGB
	}
	return s
}

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry`)

func IsMobileUserAgent(ua string) bool {
	return mobileUserAgent.MatchString(ua)
}

// Score accumulates the capability score for s. The range is 0..6.
func Score(s Signals) int {
	s = s.withDefaults()

	score := 0
	switch {
	case s.HardwareConcurrency >= 8:
		score += 3
	case s.HardwareConcurrency >= 4:
		score += 2
	default:
		score += 1
	}

	switch {
	case s.DeviceMemoryGB >= 8:
		score += 3
	case s.DeviceMemoryGB >= 4:
		score += 2
	default:
		score += 1
	}

	if IsMobileUserAgent(s.UserAgent) {
		score -= 2
	}
	return score
}

// Classify maps environment signals to a tier. It never fails: missing
// readings fall back to defaults and an unavailable environment yields medium.
// The thresholds never select TierMinimal.
func Classify(s Signals) Tier {
	if !s.Available {
		return TierMedium
	}
	score := Score(s)
	switch {
	case score >= 5:
		return TierHigh
	case score >= 3:
		return TierMedium
	default:
		return TierLow
	}
}

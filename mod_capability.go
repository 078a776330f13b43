package portfolio

import (
	"os"
	"strings"

	"github.com/aek676/portfolio/background/core"
)

// TierEnv forces a tier during development, bypassing classification.
const TierEnv = "PORTFOLIO_TIER"

// Capability is the classified device tier and its render configuration.
// Classified is false until the app mounts.
type Capability struct {
	Signals    core.Signals
	Tier       core.Tier
	Config     core.RenderConfig
	Forced     bool
	Classified bool
}

// SetTier switches to a tier's configuration. The grass field follows on the
// next frame.
func (c *Capability) SetTier(t core.Tier) {
	c.Tier = t
	c.Config = core.ConfigFor(t)
}

type CapabilityModule struct {
	Signals core.Signals
	// Override takes precedence over the environment when non-empty.
	Override string
	// Getenv replaces os.Getenv, for tests.
	Getenv func(string) string
}

func (mod CapabilityModule) Install(app *App, cmd *Commands) {
	capability := &Capability{Signals: mod.Signals}
	capability.SetTier(core.TierMedium)
	cmd.AddResources(capability)

	getenv := mod.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	app.UseSystem(
		System(func(c *Capability) {
			classify(app.Logger(), c, mod.Override, getenv(TierEnv))
		}).
			InStage(Prelude).
			InState(OnEnter(StateMounting)),
	)
}

func classify(log Logger, c *Capability, override, env string) {
	forced := strings.TrimSpace(override)
	if forced == "" {
		forced = strings.TrimSpace(env)
	}

	if forced != "" {
		t, err := core.ParseTier(forced)
		if err != nil {
			log.Warnf("Ignoring tier override: %v", err)
		} else {
			c.SetTier(t)
			c.Forced = true
			c.Classified = true
			log.Infof("Tier forced to %s", t)
			return
		}
	}

	if !c.Signals.Available {
		log.Debugf("Capability signals unavailable, using %s", core.TierMedium)
	}
	c.SetTier(core.Classify(c.Signals))
	c.Classified = true
	log.Infof("Tier %s (score %d, %d cores, %.0fGB, mobile=%t)",
		c.Tier, core.Score(c.Signals), c.Signals.HardwareConcurrency,
		c.Signals.DeviceMemoryGB, core.IsMobileUserAgent(c.Signals.UserAgent))
}

package portfolio

import (
	"time"
)

// Time tracks the frame clock. Elapsed is measured from entering
// StateMounted and feeds the wind animation.
type Time struct {
	Start   time.Time
	Now     time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// ElapsedSeconds is Elapsed in seconds, as the shaders consume it.
func (t *Time) ElapsedSeconds() float32 {
	return float32(t.Elapsed.Seconds())
}

type TimeModule struct {
	// Clock replaces time.Now, for tests.
	Clock func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := mod.Clock
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	cmd.AddResources(&Time{Start: now, Now: now})
	cmd.UseSystem(
		System(func(t *Time) { advanceTime(t, clock()) }).
			InStage(Prelude).
			RunAlways(),
	)
	if app.stateful {
		cmd.UseSystem(
			System(func(t *Time) { resetClock(t, clock()) }).
				InStage(Prelude).
				InState(OnEnter(StateMounted)),
		)
	}
}

// resetClock restarts the elapsed count, so window and device setup done
// while mounting is not part of the animation time.
func resetClock(t *Time, now time.Time) {
	t.Start = now
	t.Now = now
	t.Dt = 0
	t.Elapsed = 0
}

func advanceTime(t *Time, now time.Time) {
	if now.Before(t.Now) {
		now = t.Now
	}
	t.Dt = now.Sub(t.Now)
	t.Now = now
	t.Elapsed = now.Sub(t.Start)
}

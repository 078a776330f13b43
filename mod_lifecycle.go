package portfolio

import (
	"github.com/aek676/portfolio/background/core"
)

// LifecycleModule drives Mounting -> Mounted after the first frame and
// releases every registered subscription when the app unmounts, whichever
// state it unmounts from.
type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(core.NewSubscriptions())

	app.UseSystem(
		System(func(cmd *Commands) {
			cmd.ChangeState(StateMounted)
		}).
			InStage(Finale).
			InState(OnExecute(StateMounting)),
	)
	app.UseSystem(
		System(func(subs *core.Subscriptions) {
			names := subs.Names()
			subs.Close()
			app.Logger().Debugf("Released %d subscriptions %v", len(names), names)
		}).
			InStage(Finale).
			InState(OnEnter(StateUnmounted)),
	)
}

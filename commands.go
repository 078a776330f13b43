package portfolio

// Commands is handed to modules and systems for structural changes.
type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

func (cmd *Commands) Unmount() *Commands {
	cmd.app.Unmount()
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

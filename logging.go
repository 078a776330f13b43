package portfolio

import (
	"github.com/aek676/portfolio/internal/logging"
)

type Logger = logging.Logger

type DefaultLogger = logging.DefaultLogger

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return logging.NewDefaultLogger(prefix, debug)
}

func NewNopLogger() Logger { return logging.NewNopLogger() }

// LoggingModule installs a default logger as a resource. Install it first so
// later modules log through it.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// Logger overrides the default logger when set.
	Logger Logger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	if m.Logger != nil {
		cmd.AddResources(&LoggerResource{Logger: m.Logger})
		return
	}
	cmd.AddResources(&LoggerResource{Logger: NewDefaultLogger(m.Prefix, m.Debug)})
}

// LoggerResource carries the app's logger so systems can ask for it.
type LoggerResource struct {
	Logger
}

// Logger returns the installed logger, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil || app.resources == nil {
		return NewNopLogger()
	}
	if res, ok := Resource[LoggerResource](app); ok && res.Logger != nil {
		return res.Logger
	}
	return NewNopLogger()
}

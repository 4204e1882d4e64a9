package cmd

import (
	"context"

	"github.com/skein-dev/skein/internal/config"
	"github.com/skein-dev/skein/internal/logging"
	"github.com/skein-dev/skein/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// appContextKey is the context key for the App instance.
type appContextKey struct{}

// Config holds the resolved global settings for a command invocation.
type Config struct {
	Profile      string
	Region       string
	OutputFormat string
	Verbose      bool
}

// App holds the application dependencies that can be injected for testing.
type App struct {
	Config Config
	Render *ui.Renderer
}

// NewApp creates an App with configuration resolved from flags and viper.
func NewApp() *App {
	return &App{
		Config: Config{
			Profile:      getProfile(),
			Region:       getRegion(),
			OutputFormat: getOutputFormat(),
			Verbose:      IsVerbose(),
		},
		Render: render,
	}
}

// NewAppWithConfig creates an App with the given configuration, primarily
// for testing.
func NewAppWithConfig(cfg Config, renderer *ui.Renderer) *App {
	return &App{Config: cfg, Render: renderer}
}

// SetApp returns a context carrying the given App, for injection in tests.
func SetApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

// GetApp retrieves the App from the command context, creating a default one
// when none is set.
func GetApp(cmd *cobra.Command) *App {
	if app, ok := cmd.Context().Value(appContextKey{}).(*App); ok {
		return app
	}
	return NewApp()
}

// Logger returns a logging.Logger that reports through the app's renderer,
// used to surface watcher warnings on the same channel as other output.
func (a *App) Logger() logging.Logger {
	return renderLogger{r: a.Render}
}

// LoadAliases loads the stream alias config, applying the viper-level
// log_group override when the file doesn't set one.
func (a *App) LoadAliases() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.LogGroup == "" {
		cfg.LogGroup = viper.GetString("log_group")
	}
	return cfg, nil
}

// ResolveStream resolves a stream argument (@alias or literal stream name)
// and the effective log group. An explicit --group flag wins over any
// configured group.
func (a *App) ResolveStream(arg, groupFlag string) (group, stream string, err error) {
	cfg, err := a.LoadAliases()
	if err != nil {
		return "", "", err
	}
	group, stream, err = cfg.ResolveStream(arg)
	if err != nil {
		return "", "", err
	}
	if groupFlag != "" {
		group = groupFlag
	}
	return group, stream, nil
}

// renderLogger adapts ui.Renderer to logging.Logger.
type renderLogger struct {
	r *ui.Renderer
}

func (l renderLogger) Debug(msg string, args ...interface{}) { l.r.Debug(msg, args...) }
func (l renderLogger) Info(msg string, args ...interface{})  { l.r.Info(msg, args...) }
func (l renderLogger) Warn(msg string, args ...interface{})  { l.r.Warning(msg, args...) }
func (l renderLogger) Error(msg string, args ...interface{}) { l.r.Error(msg, args...) }
func (l renderLogger) SetLevel(level logging.Level)          {}

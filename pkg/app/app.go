package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/screens"
	"go.uber.org/zap"
)

type App struct {
	deps screens.Deps
	opts []screens.RootOption
}

func NewApp(deps screens.Deps, opts ...screens.RootOption) *App {
	return &App{deps: deps, opts: opts}
}

// Run blocks until the TUI exits. Background operations still running are
// cancelled on the way out.
func (a *App) Run() error {
	defer a.deps.Runner.Close()

	model := screens.NewRootScreen(a.deps, a.opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	if err != nil && a.deps.Logger != nil {
		a.deps.Logger.Error("TUI exited with error", zap.Error(err))
	}
	return err
}

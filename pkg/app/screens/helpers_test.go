package screens

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDeps(t *testing.T, tweak ...func(*config.Config)) Deps {
	t.Helper()

	cfg := config.Default()
	cfg.Store.ProcessingDelay = time.Millisecond
	cfg.Admin.CacheClearDelay = time.Millisecond
	cfg.Store.StartingBalance = 100
	for _, fn := range tweak {
		fn(cfg)
	}

	source, err := sources.NewStatic()
	require.NoError(t, err)
	controller, err := services.NewMangaController(context.Background(), source, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { controller.Close() })

	state, err := services.NewState(cfg, zap.NewNop())
	require.NoError(t, err)

	runner := services.NewRunner(zap.NewNop())
	t.Cleanup(runner.Close)

	theme := styles.Dark()
	return Deps{
		Controller: controller,
		State:      state,
		Runner:     runner,
		Logger:     zap.NewNop(),
		Theme:      &theme,
	}
}

// nextResult waits for the runner to report a finished operation.
func nextResult(t *testing.T, deps Deps) OperationDoneMsg {
	t.Helper()
	select {
	case res, ok := <-deps.Runner.Results():
		require.True(t, ok, "runner closed")
		return OperationDoneMsg{Result: res}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for operation")
	}
	return OperationDoneMsg{}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// drain runs cmd and every command batched inside it, handing each
// resulting message to m.
func drain(m tea.Model, cmd tea.Cmd) {
	switch msg := run(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	default:
		m.Update(msg)
	}
}

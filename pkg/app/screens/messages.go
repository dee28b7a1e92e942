package screens

import (
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/services"
	"go.uber.org/zap"
)

// Deps is what every screen is built from.
type Deps struct {
	Controller *services.MangaController
	State      *services.State
	Runner     *services.Runner
	Logger     *zap.Logger
	Theme      *styles.Theme
}

// SwitchScreenMsg moves the root screen to a tab. Data carries an optional
// query for the search and browse tabs.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type OpenDetailsMsg struct {
	EntryID string
}

// OpenReaderMsg opens a chapter in the reader at Page (1 when zero).
type OpenReaderMsg struct {
	ChapterID string
	Page      int
}

// BackMsg closes the reader or the details view.
type BackMsg struct{}

// OperationDoneMsg carries a finished background operation to its owner.
type OperationDoneMsg struct {
	services.Result
}

const (
	ownerStore = "store"
	ownerAdmin = "admin"
)

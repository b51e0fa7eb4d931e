package tui

import (
	"time"

	"github.com/Veraticus/odonto-flow/internal/model"
)

// snapshotLoadedMsg carries a complete refresh of both collections.
type snapshotLoadedMsg struct {
	loadedAt  time.Time
	consultas []model.Consulta
	slots     []model.Slot
}

// loadFailedMsg reports a refresh that failed; the screen keeps the
// previous snapshot.
type loadFailedMsg struct {
	err error
}

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	err         error
	destination string
	count       int
}

// clearStatusMsg expires the status line set by notice seq.
type clearStatusMsg struct {
	seq int
}

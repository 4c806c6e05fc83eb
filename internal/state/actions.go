package state

import (
	"time"

	"github.com/kk-code-lab/lightbox/internal/catalog"
)

// Action is the base interface for all state mutations
type Action interface{}

// GridDirection names a grid cursor movement.
type GridDirection int

const (
	GridUp GridDirection = iota
	GridDown
	GridLeft
	GridRight
	GridFirst
	GridLast
	GridPageUp
	GridPageDown
)

// ===== GRID ACTIONS =====

type GridMoveAction struct {
	Direction GridDirection
}

// GridSelectAction moves the grid selection to a tile, e.g. after a click.
type GridSelectAction struct {
	Index int
}

// ===== LIGHTBOX ACTIONS =====

type OpenAction struct {
	Index int
}
type OpenSelectedAction struct{}
type CloseAction struct{}
type NextAction struct{}
type PreviousAction struct{}
type JumpFirstAction struct{}
type JumpLastAction struct{}
type JumpToAction struct {
	Index int
}

// SwipeAction carries a finished drag in distance units (already scaled from cells).
type SwipeAction struct {
	DX, DY float64
}

// ===== FILTER ACTIONS =====

type FilterCycleAction struct {
	Delta int
}
type FilterSetAction struct {
	Category string
}

// ===== ASYNC RESULTS =====

// CatalogLoadedAction delivers an initial load or a watcher reload.
type CatalogLoadedAction struct {
	Catalog *catalog.Catalog
	Err     error
}

// ImageLoadedAction reports a preload completion for Generation.
type ImageLoadedAction struct {
	Source     string
	Generation uint64
	Err        error
}

// ===== EFFECTS =====

type TickAction struct {
	Now time.Time
}
type EasterEggAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// YankSourceAction and OpenExternalAction run commands and are carried out
// by the application; the reducer leaves state untouched for them.
type YankSourceAction struct{}
type OpenExternalAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}

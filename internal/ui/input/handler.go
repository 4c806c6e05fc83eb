package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/effects"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
)

// Default terminal cell size in distance units, used to turn drags measured
// in cells into swipe distances.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// HitTestFunc maps a screen cell to a grid tile index, or -1.
type HitTestFunc func(x, y int) int

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
	konami     effects.Konami
	hitTest    HitTestFunc

	cellWidth  float64
	cellHeight float64

	// Primary-button drag in progress.
	pressed        bool
	startX, startY int
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// SetCellSize sets the distance units covered by one terminal cell.
func (ih *InputHandler) SetCellSize(width, height float64) {
	if width > 0 {
		ih.cellWidth = width
	}
	if height > 0 {
		ih.cellHeight = height
	}
}

// SetHitTest installs the grid hit-test used for clicks.
func (ih *InputHandler) SetHitTest(fn HitTestFunc) {
	ih.hitTest = fn
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventMouse:
		ih.processMouseEvent(ev)
		return true
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) mode() statepkg.Mode {
	if ih.state == nil {
		return statepkg.ModeGrid
	}
	return ih.state.Mode()
}

func (ih *InputHandler) feedKonami(ev *tcell.EventKey) {
	key := effects.KeyOther
	switch ev.Key() {
	case tcell.KeyUp:
		key = effects.KeyUp
	case tcell.KeyDown:
		key = effects.KeyDown
	case tcell.KeyLeft:
		key = effects.KeyLeft
	case tcell.KeyRight:
		key = effects.KeyRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'b', 'B':
			key = effects.KeyB
		case 'a', 'A':
			key = effects.KeyA
		}
	}
	if ih.konami.Feed(key) {
		ih.actionChan <- statepkg.EasterEggAction{}
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	ih.feedKonami(ev)

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	if ih.state != nil && ih.state.HelpVisible {
		switch ev.Key() {
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			switch ev.Rune() {
			case '?', 'q', 'Q':
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	if ev.Key() == tcell.KeyRune && ev.Rune() == '?' {
		ih.actionChan <- statepkg.HelpToggleAction{}
		return true
	}

	if ih.mode() == statepkg.ModeLightbox {
		ih.processLightboxKey(ev)
		return true
	}
	return ih.processGridKey(ev)
}

func (ih *InputHandler) processLightboxKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.PreviousAction{}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.NextAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.JumpFirstAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.JumpLastAction{}
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.CloseAction{}
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= '1' && r <= '9':
			ih.actionChan <- statepkg.JumpToAction{Index: int(r - '1')}
		case r == 'h', r == 'p':
			ih.actionChan <- statepkg.PreviousAction{}
		case r == 'l', r == 'n', r == ' ':
			ih.actionChan <- statepkg.NextAction{}
		case r == 'g':
			ih.actionChan <- statepkg.JumpFirstAction{}
		case r == 'G':
			ih.actionChan <- statepkg.JumpLastAction{}
		case r == 'q':
			ih.actionChan <- statepkg.CloseAction{}
		case r == 'y':
			ih.actionChan <- statepkg.YankSourceAction{}
		case r == 'o':
			if ih.state != nil && ih.state.OpenerAvailable {
				ih.actionChan <- statepkg.OpenExternalAction{}
			}
		}
	}
}

func (ih *InputHandler) processGridKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridUp}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridDown}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridLeft}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridRight}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridFirst}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridLast}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridPageUp}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridPageDown}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.OpenSelectedAction{}
	case tcell.KeyTab:
		ih.actionChan <- statepkg.FilterCycleAction{Delta: 1}
	case tcell.KeyBacktab:
		ih.actionChan <- statepkg.FilterCycleAction{Delta: -1}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case 'k':
			ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridUp}
		case 'j':
			ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridDown}
		case 'h':
			ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridLeft}
		case 'l':
			ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridRight}
		case 'g':
			ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridFirst}
		case 'G':
			ih.actionChan <- statepkg.GridMoveAction{Direction: statepkg.GridLast}
		case ' ':
			ih.actionChan <- statepkg.OpenSelectedAction{}
		case 'c':
			ih.actionChan <- statepkg.FilterCycleAction{Delta: 1}
		case 'C':
			ih.actionChan <- statepkg.FilterCycleAction{Delta: -1}
		case 'y':
			ih.actionChan <- statepkg.YankSourceAction{}
		}
	}
	return true
}

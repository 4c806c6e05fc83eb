package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
)

// processMouseEvent tracks primary-button drags. A release ends the gesture:
// in the lightbox it becomes a swipe, or a side click when the pointer did
// not move; in the grid a click opens the tile under the pointer.
func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		ih.wheel(-1)
		return
	case buttons&tcell.WheelDown != 0:
		ih.wheel(1)
		return
	}

	if buttons&tcell.Button1 != 0 {
		if !ih.pressed {
			ih.pressed = true
			ih.startX, ih.startY = x, y
		}
		return
	}

	if !ih.pressed || buttons != tcell.ButtonNone {
		return
	}
	ih.pressed = false
	dx, dy := x-ih.startX, y-ih.startY

	if ih.state != nil && ih.state.HelpVisible {
		return
	}
	if ih.mode() == statepkg.ModeLightbox {
		if dx == 0 && dy == 0 {
			ih.sideClick(x)
			return
		}
		ih.actionChan <- statepkg.SwipeAction{
			DX: float64(dx) * ih.cellWidth,
			DY: float64(dy) * ih.cellHeight,
		}
		return
	}

	if dx != 0 || dy != 0 || ih.hitTest == nil {
		return
	}
	if idx := ih.hitTest(x, y); idx >= 0 {
		ih.actionChan <- statepkg.OpenAction{Index: idx}
	}
}

// sideClick treats the outer quarters of the screen as previous/next buttons.
func (ih *InputHandler) sideClick(x int) {
	if ih.state == nil || ih.state.ScreenWidth <= 0 {
		return
	}
	quarter := ih.state.ScreenWidth / 4
	switch {
	case x < quarter:
		ih.actionChan <- statepkg.PreviousAction{}
	case x >= ih.state.ScreenWidth-quarter:
		ih.actionChan <- statepkg.NextAction{}
	}
}

func (ih *InputHandler) wheel(delta int) {
	if ih.mode() == statepkg.ModeLightbox {
		if delta < 0 {
			ih.actionChan <- statepkg.PreviousAction{}
		} else {
			ih.actionChan <- statepkg.NextAction{}
		}
		return
	}
	dir := statepkg.GridDown
	if delta < 0 {
		dir = statepkg.GridUp
	}
	ih.actionChan <- statepkg.GridMoveAction{Direction: dir}
}

package app

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/catalog"
	"github.com/kk-code-lab/lightbox/internal/config"
	"github.com/kk-code-lab/lightbox/internal/locale"
	"github.com/kk-code-lab/lightbox/internal/preload"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
	inputui "github.com/kk-code-lab/lightbox/internal/ui/input"
	renderui "github.com/kk-code-lab/lightbox/internal/ui/render"
	"github.com/kk-code-lab/lightbox/internal/viewlog"
	"go.uber.org/zap"
)

// Options wires the collaborators of an Application.
type Options struct {
	Config  config.Config
	Catalog *catalog.Catalog
	// Watch reloads the catalog when its manifest or directory changes.
	Watch     bool
	Logger    *zap.Logger
	Views     viewlog.Recorder
	Localizer *locale.Localizer
	// Screen overrides the terminal; tests pass a simulation screen.
	Screen tcell.Screen
}

// Application represents the running app.
type Application struct {
	screen    tcell.Screen
	state     *statepkg.AppState
	reducer   *statepkg.StateReducer
	renderer  *renderui.Renderer
	input     *inputui.InputHandler
	actionCh  chan statepkg.Action
	done      chan struct{}
	closeOnce sync.Once

	shouldQuit bool
	ctx        context.Context

	logger    *zap.Logger
	views     viewlog.Recorder
	cache     *preload.Cache
	preloader *preload.Preloader
	watch     bool
	watcher   *catalog.Watcher

	clipboardCmd   []string
	clipboardAvail bool
	openerCmd      []string
}

// State exposes the current state; it must only be read from the UI goroutine.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Close cleans up resources. It is safe to call more than once.
func (app *Application) Close() error {
	var err error
	app.closeOnce.Do(func() {
		close(app.done)
		if app.watcher != nil {
			if werr := app.watcher.Close(); werr != nil {
				err = werr
			}
		}
		if perr := app.preloader.Close(); perr != nil && err == nil {
			err = perr
		}
		app.screen.Fini()
	})
	return err
}

// dispatch queues an action from any goroutine without blocking the caller.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case <-app.done:
		return
	default:
	}
	select {
	case app.actionCh <- action:
	default:
		go func() {
			select {
			case app.actionCh <- action:
			case <-app.done:
			}
		}()
	}
}

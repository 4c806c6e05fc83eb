package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/catalog"
	"github.com/kk-code-lab/lightbox/internal/effects"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	"github.com/kk-code-lab/lightbox/internal/preload"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
	"github.com/kk-code-lab/lightbox/internal/ui/input"
	renderui "github.com/kk-code-lab/lightbox/internal/ui/render"
	"github.com/kk-code-lab/lightbox/internal/viewlog"
	"go.uber.org/zap"
)

const (
	animationInterval = 50 * time.Millisecond
	yankFlash         = 100 * time.Millisecond
)

func NewApplication(opts Options) (*Application, error) {
	if opts.Catalog == nil {
		return nil, errors.New("no catalog to show")
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	views := opts.Views
	if views == nil {
		views = viewlog.Nop{}
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	cache, err := preload.NewCache(cfg.Preload.CacheSize)
	if err != nil {
		screen.Fini()
		return nil, fmt.Errorf("image cache: %w", err)
	}

	clipboardCmd, clipboardAvail := detectClipboard()
	openerCmd, openerAvail := detectOpenerCommand()

	now := time.Now()
	state := statepkg.NewAppState(now)
	state.EffectsEnabled = cfg.Effects.Enabled
	state.ClipboardAvailable = clipboardAvail
	state.OpenerAvailable = openerAvail
	if state.EffectsEnabled {
		hearts := effects.DefaultHeartConfig()
		hearts.Interval = cfg.Effects.HeartsInterval
		state.Hearts = effects.NewHeartField(hearts, nil)
	}
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	reducer := statepkg.NewStateReducer(
		statepkg.WithGesture(gallery.GestureConfig{Threshold: cfg.Gesture.Threshold}),
		statepkg.WithRain(cfg.Effects.RainCount, cfg.Effects.RainSpacing),
		statepkg.WithTypewriter(cfg.Effects.TypewriterDelay, cfg.Effects.TypewriterInterval),
	)

	renderer := renderui.NewRenderer(screen)
	renderer.SetImages(cache)
	renderer.SetLocalizer(opts.Localizer)

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)
	inputHandler.SetCellSize(cfg.Gesture.CellWidth, cfg.Gesture.CellHeight)
	inputHandler.SetHitTest(func(x, y int) int {
		layout, ok := renderer.LastLayout()
		if !ok {
			return -1
		}
		return layout.TileAt(x, y)
	})

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderer,
		input:          inputHandler,
		actionCh:       actionCh,
		done:           make(chan struct{}),
		ctx:            context.Background(),
		logger:         logger,
		views:          views,
		cache:          cache,
		watch:          opts.Watch,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		openerCmd:      openerCmd,
	}
	app.preloader = preload.New(preload.Config{
		Workers:      cfg.Preload.Workers,
		MaxDimension: cfg.Preload.MaxDimension,
	}, cache, app.deliverImage)

	if _, err := reducer.Reduce(state, statepkg.CatalogLoadedAction{Catalog: opts.Catalog}); err != nil {
		screen.Fini()
		return nil, err
	}
	if category := cfg.Gallery.Category; category != "" && !strings.EqualFold(category, gallery.AllCategories) {
		if _, err := reducer.Reduce(state, statepkg.FilterSetAction{Category: category}); err != nil {
			screen.Fini()
			return nil, err
		}
	}

	logger.Info("catalog loaded",
		zap.String("root", opts.Catalog.Root),
		zap.Int("photos", len(opts.Catalog.Items)),
		zap.String("category", state.ActiveCategory()),
	)
	return app, nil
}

func (app *Application) deliverImage(r preload.Result) {
	app.dispatch(statepkg.ImageLoadedAction{Source: r.Source, Generation: r.Generation, Err: r.Err})
}

// Run drives the UI until the user quits or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	defer app.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.ctx = ctx

	app.preloader.Start(ctx)
	app.startWatcher(ctx)
	app.drainOutboxes()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-app.done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case <-ctx.Done():
			app.shouldQuit = true
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case now := <-animationCh:
			if app.handleAction(statepkg.TickAction{Now: now}) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
	app.logger.Info("shutting down")
	return nil
}

func (app *Application) startWatcher(ctx context.Context) {
	if !app.watch || app.state.CatalogRoot == "" {
		return
	}
	w, err := catalog.NewWatcher(app.state.CatalogRoot, 0)
	if err != nil {
		app.logger.Warn("catalog watch unavailable", zap.Error(err))
		return
	}
	if err := w.Start(ctx, func(c *catalog.Catalog, err error) {
		app.dispatch(statepkg.CatalogLoadedAction{Catalog: c, Err: err})
	}); err != nil {
		app.logger.Warn("catalog watch unavailable", zap.Error(err))
		_ = w.Close()
		return
	}
	app.watcher = w
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize, *tcell.EventMouse:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil {
		return false
	}
	if app.state.Animating() {
		return true
	}
	if app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < yankFlash
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.YankSourceAction:
		return app.handleClipboard()
	case statepkg.OpenExternalAction:
		return app.handleOpenExternal()
	}

	_, err := app.reducer.Reduce(app.state, action)
	if background(action) {
		if err != nil {
			app.state.LastError = err
		}
	} else {
		app.state.LastError = err
	}
	app.logAction(action, err)
	app.drainOutboxes()
	return true
}

// background actions arrive without user input; they never clear an error
// the user has not seen yet.
func background(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.TickAction, statepkg.ImageLoadedAction, statepkg.CatalogLoadedAction:
		return true
	}
	return false
}

func (app *Application) logAction(action statepkg.Action, err error) {
	switch a := action.(type) {
	case statepkg.ImageLoadedAction:
		if a.Err != nil {
			app.logger.Warn("image load failed", zap.String("source", a.Source), zap.Error(a.Err))
		}
	case statepkg.CatalogLoadedAction:
		if err != nil {
			app.logger.Warn("catalog reload failed", zap.Error(err))
			return
		}
		if a.Catalog != nil {
			app.logger.Info("catalog reloaded",
				zap.String("root", a.Catalog.Root),
				zap.Int("photos", len(a.Catalog.Items)),
			)
		}
	case statepkg.EasterEggAction:
		app.logger.Info("easter egg activated")
	default:
		if err != nil {
			app.logger.Debug("action rejected", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
		}
	}
}

// drainOutboxes hands queued view events and preload requests to their sinks.
func (app *Application) drainOutboxes() {
	for _, ev := range app.state.TakeViewEvents() {
		app.logger.Info("gallery image viewed",
			zap.String("source", ev.Source),
			zap.Int("position", ev.Position+1),
			zap.Int("total", ev.Total),
		)
		err := app.views.Record(app.ctx, viewlog.View{
			Source:   ev.Source,
			Caption:  ev.Caption,
			Position: ev.Position,
			Total:    ev.Total,
			At:       ev.At,
		})
		if err != nil {
			app.logger.Warn("record view", zap.Error(err))
		}
	}

	if req, ok := app.state.TakePreloadRequest(); ok {
		if err := app.preloader.Request(req.Generation, req.Sources); err != nil {
			app.logger.Debug("preload request dropped", zap.Error(err))
		}
	}
}

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/config"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
)

func TestNewApplicationAppliesInitialCategory(t *testing.T) {
	cfg := config.Config{Gallery: config.GalleryConfig{Category: "Party"}}
	app := newTestApplicationWith(t, cfg, &recordedViews{})

	if got := app.state.ActiveCategory(); got != "party" {
		t.Fatalf("active category = %q, want party", got)
	}
	if got := app.state.Gallery.Len(); got != 2 {
		t.Fatalf("filtered len = %d, want 2", got)
	}
}

func TestNewApplicationRejectsUnknownCategory(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	_, err := NewApplication(Options{
		Config:  config.Config{Gallery: config.GalleryConfig{Category: "reception"}},
		Catalog: testCatalog(),
		Screen:  screen,
	})
	if !errors.Is(err, statepkg.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestHandleActionRecordsViewsAndRequestsPreload(t *testing.T) {
	views := &recordedViews{}
	app := newTestApplicationWith(t, config.Config{}, views)

	app.handleAction(statepkg.OpenAction{Index: 1})
	app.handleAction(statepkg.NextAction{})

	if len(views.views) != 2 {
		t.Fatalf("expected 2 recorded views, got %d", len(views.views))
	}
	first, second := views.views[0], views.views[1]
	if first.Source != "/album/party/cake.jpg" || first.Position != 1 || first.Total != 3 {
		t.Fatalf("unexpected first view %+v", first)
	}
	if second.Source != "/album/party/dance.jpg" || second.Caption != "First dance" {
		t.Fatalf("unexpected second view %+v", second)
	}
	if got, want := app.preloader.Latest(), app.state.ImageGeneration; got != want {
		t.Fatalf("preloader generation = %d, want %d", got, want)
	}
}

func TestHandleActionErrorHandling(t *testing.T) {
	app := newTestApplication(t)
	app.handleAction(statepkg.OpenAction{Index: 0})

	app.handleAction(statepkg.JumpToAction{Index: 8})
	var ie *gallery.IndexError
	if !errors.As(app.state.LastError, &ie) {
		t.Fatalf("expected IndexError, got %v", app.state.LastError)
	}

	// Background actions keep the error visible.
	app.handleAction(statepkg.TickAction{Now: time.Now()})
	if app.state.LastError == nil {
		t.Fatalf("tick must not clear LastError")
	}

	app.handleAction(statepkg.NextAction{})
	if app.state.LastError != nil {
		t.Fatalf("successful user action should clear LastError, got %v", app.state.LastError)
	}
}

func TestHandleActionAppliesCurrentImageResults(t *testing.T) {
	app := newTestApplication(t)
	app.handleAction(statepkg.OpenAction{Index: 0})
	gen := app.state.ImageGeneration
	loadErr := errors.New("corrupt jpeg")

	app.handleAction(statepkg.ImageLoadedAction{Source: "/album/ceremony/vows.jpg", Generation: gen - 1, Err: loadErr})
	if app.state.ImageError("/album/ceremony/vows.jpg") != nil {
		t.Fatalf("stale result must be ignored")
	}

	app.handleAction(statepkg.ImageLoadedAction{Source: "/album/ceremony/vows.jpg", Generation: gen, Err: loadErr})
	if !errors.Is(app.state.ImageError("/album/ceremony/vows.jpg"), loadErr) {
		t.Fatalf("expected load error to be recorded")
	}
}

func TestHandleActionQuit(t *testing.T) {
	app := newTestApplication(t)
	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a render")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit")
	}
	if app.handleAction(nil) {
		t.Fatalf("nil action should be ignored")
	}
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	app := newTestApplication(t)
	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	app.dispatch(statepkg.NextAction{})
	select {
	case a := <-app.actionCh:
		t.Fatalf("unexpected action after close: %T", a)
	default:
	}
	if err := app.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	app, err := NewApplication(Options{Catalog: testCatalog(), Screen: screen})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(context.Background()) }()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-errCh:
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			return
		case <-tick.C:
			screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		case <-deadline:
			t.Fatalf("Run did not return after q")
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	app, err := NewApplication(Options{Catalog: testCatalog(), Screen: screen})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

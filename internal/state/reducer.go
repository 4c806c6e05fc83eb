package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kk-code-lab/lightbox/internal/effects"
	"github.com/kk-code-lab/lightbox/internal/gallery"
)

// ErrUnknownCategory is returned by FilterSetAction for a category the
// catalogue does not have.
var ErrUnknownCategory = errors.New("unknown category")

// StateReducer handles all state transitions
type StateReducer struct {
	gesture     gallery.GestureConfig
	rainCount   int
	rainSpacing time.Duration
	typeDelay   time.Duration
	typeStep    time.Duration
	typeHold    time.Duration
	clock       func() time.Time
}

// Option configures a StateReducer.
type Option func(*StateReducer)

// WithGesture sets the swipe recognition threshold.
func WithGesture(g gallery.GestureConfig) Option {
	return func(r *StateReducer) { r.gesture = g }
}

// WithRain sets how many hearts the easter egg drops and their spacing.
func WithRain(count int, spacing time.Duration) Option {
	return func(r *StateReducer) {
		if count > 0 {
			r.rainCount = count
		}
		if spacing > 0 {
			r.rainSpacing = spacing
		}
	}
}

// WithTypewriter sets the catchphrase reveal timing.
func WithTypewriter(delay, interval time.Duration) Option {
	return func(r *StateReducer) {
		if delay >= 0 {
			r.typeDelay = delay
		}
		if interval > 0 {
			r.typeStep = interval
		}
	}
}

// WithClock replaces time.Now for view timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *StateReducer) {
		if now != nil {
			r.clock = now
		}
	}
}

func NewStateReducer(opts ...Option) *StateReducer {
	tw := effects.NewTypewriter("")
	r := &StateReducer{
		gesture:     gallery.DefaultGesture(),
		rainCount:   50,
		rainSpacing: 100 * time.Millisecond,
		typeDelay:   tw.Delay,
		typeStep:    tw.Interval,
		typeHold:    tw.CursorHold,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Gesture returns the swipe configuration in use.
func (r *StateReducer) Gesture() gallery.GestureConfig {
	return r.gesture
}

// Reduce applies an action to state and returns new state
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== GRID =====

	case GridMoveAction:
		if state.Gallery.IsOpen() {
			return state, nil
		}
		state.moveGrid(a.Direction)
		return state, nil

	case GridSelectAction:
		if a.Index < 0 || a.Index >= state.Gallery.Len() {
			return state, &gallery.IndexError{Index: a.Index, Len: state.Gallery.Len()}
		}
		state.GridSelected = a.Index
		state.ensureGridVisible()
		return state, nil

	// ===== LIGHTBOX =====

	case OpenAction:
		return r.apply(state, gallery.Open{Index: a.Index})

	case OpenSelectedAction:
		return r.apply(state, gallery.Open{Index: state.GridSelected})

	case CloseAction:
		return r.apply(state, gallery.Close{})

	case NextAction:
		return r.apply(state, gallery.Next{})

	case PreviousAction:
		return r.apply(state, gallery.Previous{})

	case JumpFirstAction:
		return r.apply(state, gallery.JumpFirst{})

	case JumpLastAction:
		return r.apply(state, gallery.JumpLast{})

	case JumpToAction:
		return r.apply(state, gallery.JumpTo{Index: a.Index})

	case SwipeAction:
		// Swipes only mean something over an open photo.
		if !state.Gallery.IsOpen() {
			return state, nil
		}
		intent, ok := r.gesture.Classify(a.DX, a.DY)
		if !ok {
			return state, nil
		}
		return r.apply(state, intent)

	// ===== FILTER =====

	case FilterCycleAction:
		n := len(state.Categories)
		if n == 0 {
			return state, nil
		}
		state.CategoryIndex = ((state.CategoryIndex+a.Delta)%n + n) % n
		r.refilter(state)
		return state, nil

	case FilterSetAction:
		idx := categoryIndex(state.Categories, a.Category)
		if idx < 0 {
			return state, fmt.Errorf("%w: %q", ErrUnknownCategory, a.Category)
		}
		state.CategoryIndex = idx
		r.refilter(state)
		return state, nil

	// ===== ASYNC RESULTS =====

	case CatalogLoadedAction:
		if a.Err != nil {
			return state, a.Err
		}
		if a.Catalog == nil {
			return state, nil
		}
		r.loadCatalog(state, a)
		return state, nil

	case ImageLoadedAction:
		if a.Generation != state.ImageGeneration {
			return state, nil
		}
		if state.ImageErrors == nil {
			state.ImageErrors = map[string]error{}
		}
		if a.Err != nil {
			state.ImageErrors[a.Source] = a.Err
		} else {
			delete(state.ImageErrors, a.Source)
		}
		return state, nil

	// ===== EFFECTS =====

	case TickAction:
		state.Now = a.Now
		if state.EffectsEnabled && state.Hearts != nil {
			state.Hearts.Step(a.Now)
		}
		if state.Notice.ID != "" && !a.Now.Before(state.Notice.Until) {
			state.Notice = Notice{}
		}
		return state, nil

	case EasterEggAction:
		if state.EffectsEnabled && state.Hearts != nil {
			state.Hearts.Rain(state.Now, r.rainCount, r.rainSpacing)
		}
		state.notify("EasterEgg", state.Now)
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.ensureGridVisible()
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		if state.HelpVisible {
			state.HelpVisible = false
		}
		return state, nil

	case YankSourceAction, OpenExternalAction, QuitAction, SuspendAction:
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

// apply runs one engine intent and keeps the surrounding state in step with
// the result. On error the gallery state is left as it was.
func (r *StateReducer) apply(state *AppState, in gallery.Intent) (*AppState, error) {
	prev := state.Gallery
	next, err := gallery.Apply(prev, in)
	if err != nil {
		return state, err
	}
	state.Gallery = next

	prevCursor, _ := prev.Cursor()
	cursor, _ := next.Cursor()
	opened := next.IsOpen() && !prev.IsOpen()

	if _, closing := in.(gallery.Close); closing {
		state.GridSelected = cursor
		state.ensureGridVisible()
		return state, nil
	}

	if opened || cursor != prevCursor {
		state.GridSelected = cursor
		r.cursorChanged(state)
	}
	return state, nil
}

// cursorChanged starts a new image generation, queues the preload for the
// photo and its neighbours, and records the view when the lightbox is open.
func (r *StateReducer) cursorChanged(state *AppState) {
	state.ImageGeneration++
	sources := make([]string, 0, 3)
	if d, ok := state.Gallery.Selected(); ok {
		sources = append(sources, d.Source())
	}
	for _, d := range state.Gallery.PreloadTargets() {
		sources = append(sources, d.Source())
	}
	for _, src := range sources {
		delete(state.ImageErrors, src)
	}
	state.pendingPreload = &PreloadRequest{Generation: state.ImageGeneration, Sources: sources}

	if !state.Gallery.IsOpen() {
		return
	}
	if d, ok := state.Gallery.Selected(); ok {
		cursor, _ := state.Gallery.Cursor()
		state.pendingViews = append(state.pendingViews, ViewEvent{
			Source:   d.Source(),
			Caption:  d.Caption(),
			Position: cursor,
			Total:    state.Gallery.Len(),
			At:       r.clock(),
		})
	}
}

func (r *StateReducer) refilter(state *AppState) {
	state.Gallery = gallery.Refilter(state.Gallery, state.Items, state.ActiveCategory())
	state.GridSelected = 0
	state.GridScroll = 0
	if state.Gallery.Len() > 0 {
		r.cursorChanged(state)
	}
}

func (r *StateReducer) loadCatalog(state *AppState, a CatalogLoadedAction) {
	c := a.Catalog
	active := state.ActiveCategory()
	reload := state.Loaded

	if c.Catchphrase != state.Catchphrase || !state.Loaded {
		state.Typewriter = effects.Typewriter{
			Text:       c.Catchphrase,
			Delay:      r.typeDelay,
			Interval:   r.typeStep,
			CursorHold: r.typeHold,
		}
		state.StartedAt = state.Now
	}
	state.Title = c.Title
	state.Catchphrase = c.Catchphrase
	state.CatalogRoot = c.Root
	state.Items = append([]gallery.Item(nil), c.Items...)
	state.Categories = c.Categories()
	state.CategoryIndex = categoryIndex(state.Categories, active)
	if state.CategoryIndex < 0 {
		state.CategoryIndex = 0
	}
	state.ImageErrors = map[string]error{}
	state.Loaded = true

	r.refilter(state)
	if reload {
		state.notify("CatalogReloaded", state.Now)
	}
}

func categoryIndex(categories []string, name string) int {
	if gallery.IsWildcard(name) {
		return 0
	}
	for i, c := range categories {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

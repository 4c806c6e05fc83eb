package state

import (
	"time"

	"github.com/kk-code-lab/lightbox/internal/effects"
	"github.com/kk-code-lab/lightbox/internal/gallery"
)

// Mode is the top-level screen being shown.
type Mode int

const (
	ModeGrid Mode = iota
	ModeLightbox
)

// NoticeDuration is how long a toast stays on screen.
const NoticeDuration = 2 * time.Second

// Notice is a short toast. ID is a locale message id.
type Notice struct {
	ID    string
	Until time.Time
}

// ViewEvent records one photo shown in the lightbox.
type ViewEvent struct {
	Source   string
	Caption  string
	Position int
	Total    int
	At       time.Time
}

// PreloadRequest asks for the current photo and its neighbours to be decoded.
type PreloadRequest struct {
	Generation uint64
	Sources    []string
}

// AppState is the single source of truth
type AppState struct {
	// Catalogue
	Title         string
	Catchphrase   string
	CatalogRoot   string
	Items         []gallery.Item // full, unfiltered catalogue
	Categories    []string       // wildcard first
	CategoryIndex int
	Loaded        bool

	// Gallery engine state over the filtered index
	Gallery gallery.State

	// Grid selection & viewport (in tiles / tile rows)
	GridSelected int
	GridScroll   int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	HelpVisible bool

	// Effects
	EffectsEnabled bool
	StartedAt      time.Time
	Now            time.Time
	Typewriter     effects.Typewriter
	Hearts         *effects.HeartField
	Notice         Notice

	// Images
	ImageGeneration uint64
	ImageErrors     map[string]error

	// Status line
	ClipboardAvailable bool      // Whether clipboard command is available
	OpenerAvailable    bool      // Whether an image viewer command is available for 'o'
	LastYankTime       time.Time // Time of last successful yank (for flash effect)

	// Error state
	LastError error

	// Outboxes drained by the application after each action.
	pendingViews   []ViewEvent
	pendingPreload *PreloadRequest
}

// NewAppState creates an empty state whose effect clock starts at now.
func NewAppState(now time.Time) *AppState {
	return &AppState{
		Categories:  []string{gallery.AllCategories},
		StartedAt:   now,
		Now:         now,
		ImageErrors: map[string]error{},
	}
}

// Mode reports which screen is active.
func (s *AppState) Mode() Mode {
	if s.Gallery.IsOpen() {
		return ModeLightbox
	}
	return ModeGrid
}

// ActiveCategory returns the selected filter, or the wildcard.
func (s *AppState) ActiveCategory() string {
	if s.CategoryIndex < 0 || s.CategoryIndex >= len(s.Categories) {
		return gallery.AllCategories
	}
	return s.Categories[s.CategoryIndex]
}

// CategoryOf returns the category of the catalogue item with src.
func (s *AppState) CategoryOf(src string) string {
	for _, it := range s.Items {
		if it.Source == src {
			return it.Category
		}
	}
	return ""
}

// Current is the photo under the lightbox cursor, or the selected tile in
// the grid.
func (s *AppState) Current() (gallery.Descriptor, bool) {
	if s.Gallery.IsOpen() {
		return s.Gallery.Selected()
	}
	return s.Gallery.Item(s.GridSelected)
}

// CurrentSource is the source of Current, or "".
func (s *AppState) CurrentSource() string {
	d, ok := s.Current()
	if !ok {
		return ""
	}
	return d.Source()
}

// ImageError returns the load failure for src, if any.
func (s *AppState) ImageError(src string) error {
	return s.ImageErrors[src]
}

// Elapsed is the effect clock.
func (s *AppState) Elapsed() time.Duration {
	return s.Now.Sub(s.StartedAt)
}

// NoticeActive reports whether the toast is still showing.
func (s *AppState) NoticeActive() bool {
	return s.Notice.ID != "" && s.Now.Before(s.Notice.Until)
}

// Animating reports whether the screen changes without input.
func (s *AppState) Animating() bool {
	if s.NoticeActive() {
		return true
	}
	if !s.EffectsEnabled {
		return false
	}
	if s.Typewriter.Animating(s.Elapsed()) {
		return true
	}
	return s.Hearts != nil && s.Hearts.Active()
}

// MarkYanked records a successful clipboard copy.
func (s *AppState) MarkYanked(now time.Time) {
	s.LastYankTime = now
	s.notify("Copied", now)
}

func (s *AppState) notify(id string, now time.Time) {
	s.Notice = Notice{ID: id, Until: now.Add(NoticeDuration)}
}

// TakeViewEvents returns and clears the queued lightbox views.
func (s *AppState) TakeViewEvents() []ViewEvent {
	views := s.pendingViews
	s.pendingViews = nil
	return views
}

// TakePreloadRequest returns and clears the queued preload request. Only the
// newest request is kept; older ones are obsolete.
func (s *AppState) TakePreloadRequest() (PreloadRequest, bool) {
	if s.pendingPreload == nil {
		return PreloadRequest{}, false
	}
	req := *s.pendingPreload
	s.pendingPreload = nil
	return req, true
}

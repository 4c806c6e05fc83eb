package render

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/catalog"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	"github.com/kk-code-lab/lightbox/internal/locale"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
)

var testNow = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

type fakeImages map[string]image.Image

func (f fakeImages) Lookup(src string) (image.Image, bool) {
	img, ok := f[src]
	return img, ok
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	t.Cleanup(func() {
		screen.Fini()
	})
	screen.SetSize(w, h)
	return screen
}

func screenRow(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func screenText(screen tcell.SimulationScreen) string {
	_, _, h := screen.GetContents()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = screenRow(screen, y)
	}
	return strings.Join(rows, "\n")
}

func testState(t *testing.T, w, h int) (*statepkg.StateReducer, *statepkg.AppState) {
	t.Helper()
	reducer := statepkg.NewStateReducer()
	state := statepkg.NewAppState(testNow)
	state.ScreenWidth = w
	state.ScreenHeight = h
	cat := &catalog.Catalog{
		Title:       "Hana & Ken",
		Catchphrase: "Forever starts today",
		Items: []gallery.Item{
			{Source: "/album/ceremony/vows.jpg", AltText: "Vows", Caption: "The vows", Category: "ceremony"},
			{Source: "/album/party/cake.jpg", AltText: "Cake", Caption: "Cutting the cake", Category: "party"},
			{Source: "/album/party/dance.jpg", AltText: "Dance", Caption: "First dance", Category: "party"},
		},
	}
	if _, err := reducer.Reduce(state, statepkg.CatalogLoadedAction{Catalog: cat}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return reducer, state
}

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{"fits without truncation", "vows.jpg", 20, "vows.jpg"},
		{"adds ellipsis when needed", "verylongname", 6, "veryl…"},
		{"only ellipsis when width too small", "example", 1, "…"},
		{"multi-byte characters respected", "你好世界", 5, "你好…"},
		{"returns empty when width is zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestRenderGridShowsHeaderAndTiles(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen)
	_, state := testState(t, 80, 24)

	r.Render(state)

	if row := screenRow(screen, 0); !strings.Contains(row, "Hana & Ken") {
		t.Fatalf("title row = %q", row)
	}
	if row := screenRow(screen, 1); !strings.Contains(row, "Forever starts today") {
		t.Fatalf("catchphrase should be shown in full without effects, got %q", row)
	}
	bar := screenRow(screen, 2)
	for _, label := range []string{"All", "ceremony", "party"} {
		if !strings.Contains(bar, label) {
			t.Fatalf("category bar %q missing %q", bar, label)
		}
	}
	text := screenText(screen)
	for _, caption := range []string{"The vows", "Cutting the cake", "First dance"} {
		if !strings.Contains(text, caption) {
			t.Fatalf("grid missing %q:\n%s", caption, text)
		}
	}
	if !strings.Contains(screenRow(screen, 22), "3 photos") {
		t.Fatalf("status line = %q", screenRow(screen, 22))
	}
}

func TestRenderGridLayoutHitTest(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen)
	_, state := testState(t, 80, 24)
	r.Render(state)

	layout, ok := r.LastLayout()
	if !ok {
		t.Fatalf("expected grid layout")
	}
	if layout.Columns != 3 || layout.Count != 3 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	secondTileX := layout.Left + statepkg.TileWidth + statepkg.TileGap + 1
	if got := layout.TileAt(secondTileX, layout.Top); got != 1 {
		t.Fatalf("TileAt second tile = %d", got)
	}
	if got := layout.TileAt(layout.Left+statepkg.TileWidth, layout.Top); got != -1 {
		t.Fatalf("gap between tiles should not hit, got %d", got)
	}
	if got := layout.TileAt(layout.Left, layout.Top+statepkg.TileHeight+statepkg.RowGap); got != -1 {
		t.Fatalf("row past the last photo should not hit, got %d", got)
	}
}

func TestRenderTypewriterRevealsCatchphrase(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen)
	reducer, state := testState(t, 80, 24)
	state.EffectsEnabled = true

	r.Render(state)
	if row := screenRow(screen, 1); strings.Contains(row, "Forever") {
		t.Fatalf("catchphrase should be hidden before the delay, got %q", row)
	}

	// 2s delay + 7 runes at 100ms.
	if _, err := reducer.Reduce(state, statepkg.TickAction{Now: testNow.Add(2600 * time.Millisecond)}); err != nil {
		t.Fatal(err)
	}
	r.Render(state)
	row := screenRow(screen, 1)
	if !strings.Contains(row, "Forever|") || strings.Contains(row, "starts") {
		t.Fatalf("expected partial catchphrase with caret, got %q", row)
	}
}

func TestRenderLightboxLoadingAndImage(t *testing.T) {
	screen := newTestScreen(t, 40, 12)
	r := NewRenderer(screen)
	reducer, state := testState(t, 40, 12)
	if _, err := reducer.Reduce(state, statepkg.OpenAction{Index: 1}); err != nil {
		t.Fatal(err)
	}

	r.Render(state)
	text := screenText(screen)
	if !strings.Contains(text, "Loading") {
		t.Fatalf("expected loading label:\n%s", text)
	}
	if !strings.Contains(screenRow(screen, 0), "2 / 3") {
		t.Fatalf("expected counter in top row, got %q", screenRow(screen, 0))
	}
	if !strings.Contains(text, "Cutting the cake") {
		t.Fatalf("expected caption:\n%s", text)
	}
	if _, ok := r.LastLayout(); ok {
		t.Fatalf("lightbox frame should not expose a grid layout")
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	r.SetImages(fakeImages{"/album/party/cake.jpg": img})
	r.Render(state)
	if strings.Contains(screenText(screen), "Loading") {
		t.Fatalf("loading label should disappear once the image is cached")
	}
	if !strings.ContainsRune(screenText(screen), halfBlock) {
		t.Fatalf("expected half-block pixels")
	}
}

func TestRenderLightboxLoadError(t *testing.T) {
	screen := newTestScreen(t, 60, 12)
	r := NewRenderer(screen)
	reducer, state := testState(t, 60, 12)
	if _, err := reducer.Reduce(state, statepkg.OpenAction{Index: 0}); err != nil {
		t.Fatal(err)
	}
	req, _ := state.TakePreloadRequest()
	if _, err := reducer.Reduce(state, statepkg.ImageLoadedAction{
		Source:     "/album/ceremony/vows.jpg",
		Generation: req.Generation,
		Err:        errors.New("corrupt"),
	}); err != nil {
		t.Fatal(err)
	}

	r.Render(state)
	if !strings.Contains(screenText(screen), "Could not load vows.jpg") {
		t.Fatalf("expected load error label:\n%s", screenText(screen))
	}
}

func TestRenderStatusLineShowsLocalisedError(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen)
	_, state := testState(t, 80, 24)
	state.LastError = &gallery.IndexError{Index: 7, Len: 3}

	r.Render(state)
	if row := screenRow(screen, 22); !strings.Contains(row, "Photo 8 does not exist (3 available)") {
		t.Fatalf("status line = %q", row)
	}
}

func TestRenderHelpOverlayUsesLocale(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen)
	loc, err := locale.New("ja")
	if err != nil {
		t.Fatalf("locale: %v", err)
	}
	r.SetLocalizer(loc)
	_, state := testState(t, 80, 30)
	state.HelpVisible = true

	r.Render(state)
	// Wide runes leave continuation cells; compare without spaces.
	text := strings.ReplaceAll(screenText(screen), " ", "")
	if !strings.Contains(text, loc.T("HelpTitle", nil)) || !strings.Contains(text, strings.ReplaceAll(loc.T("HelpPrevNext", nil), " ", "")) {
		t.Fatalf("help overlay not localised:\n%s", text)
	}
}

func TestBuildHelpOverlayLinesIncludesSections(t *testing.T) {
	lines := buildHelpOverlayLines(nil)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Gallery", "Lightbox", "General", "Previous / next photo", "Copy photo path"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected help to contain %q, got %v", want, lines)
		}
	}
}

func TestRenderNoticeAndEmptyCategory(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen)
	_, state := testState(t, 80, 24)
	state.MarkYanked(testNow)
	state.Gallery = gallery.New(nil)

	r.Render(state)
	text := screenText(screen)
	if !strings.Contains(text, "Copied photo path") {
		t.Fatalf("expected notice:\n%s", text)
	}
	if !strings.Contains(text, "No photos in this category") {
		t.Fatalf("expected empty label:\n%s", text)
	}
}

package app

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/catalog"
	"github.com/kk-code-lab/lightbox/internal/config"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
	"github.com/kk-code-lab/lightbox/internal/viewlog"
)

func TestNormalizeClipboardPathWindows(t *testing.T) {
	input := `C:\Users\me/album/party/cake.jpg`
	got := normalizeClipboardPath(input, "windows")
	want := `C:\Users\me\album\party\cake.jpg`
	if got != want {
		t.Fatalf("normalizeClipboardPath(%q, windows) = %q, want %q", input, got, want)
	}
}

func TestNormalizeClipboardPathUnix(t *testing.T) {
	input := "/tmp/album/party/../cake.jpg"
	got := normalizeClipboardPath(input, "linux")
	want := "/tmp/album/cake.jpg"
	if got != want {
		t.Fatalf("normalizeClipboardPath(%q, linux) = %q, want %q", input, got, want)
	}
}

func TestHandleClipboardSetsLastErrorOnFailure(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip", "--flag"}

	var recorded []string
	withFakeCommandBuilder(t, 7, &recorded, func() {
		app.handleClipboard()
	})

	if app.state.LastError == nil {
		t.Fatalf("expected clipboard failure to set LastError")
	}
	if got := app.state.LastError.Error(); !strings.Contains(got, "fake-clip") {
		t.Fatalf("expected error mentioning command, got %q", got)
	}
	if !app.state.LastYankTime.IsZero() {
		t.Fatalf("expected LastYankTime to remain zero on failure")
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip", "--flag"})
}

func TestHandleClipboardUpdatesYankTimeOnSuccess(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip"}

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded, func() {
		app.handleClipboard()
	})

	if app.state.LastYankTime.IsZero() {
		t.Fatalf("expected LastYankTime to update on success")
	}
	if app.state.LastError != nil {
		t.Fatalf("expected LastError to remain nil on success, got %v", app.state.LastError)
	}
	if app.state.Notice.ID != "Copied" {
		t.Fatalf("expected copied notice, got %q", app.state.Notice.ID)
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip"})
}

func TestHandleClipboardWithoutCommand(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = false
	app.clipboardCmd = nil

	app.handleClipboard()
	if app.state.LastError != errClipboardUnavailable {
		t.Fatalf("expected errClipboardUnavailable, got %v", app.state.LastError)
	}
}

func TestHandleOpenExternalAppendsSource(t *testing.T) {
	app := newTestApplication(t)
	app.state.OpenerAvailable = true
	app.openerCmd = []string{"fake-viewer", "--fullscreen"}
	if !app.handleAction(statepkg.OpenAction{Index: 1}) {
		t.Fatalf("expected open to request a render")
	}

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded, func() {
		app.handleOpenExternal()
	})

	if app.state.LastError != nil {
		t.Fatalf("unexpected error: %v", app.state.LastError)
	}
	assertCommandRecorded(t, recorded, []string{"fake-viewer", "--fullscreen", "/album/party/cake.jpg"})
	if len(app.openerCmd) != 2 {
		t.Fatalf("opener command must not grow, got %v", app.openerCmd)
	}
}

func TestHandleOpenExternalReportsStartFailure(t *testing.T) {
	app := newTestApplication(t)
	app.state.OpenerAvailable = true
	app.openerCmd = []string{"fake-viewer"}

	missing := filepath.Join(t.TempDir(), "missing-viewer")
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		return exec.Command(missing, args...)
	}
	defer func() { commandBuilder = orig }()

	app.handleOpenExternal()
	if app.state.LastError == nil {
		t.Fatalf("expected start failure to set LastError")
	}
	if got := app.state.LastError.Error(); !strings.Contains(got, "fake-viewer") {
		t.Fatalf("expected error mentioning command, got %q", got)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}

type recordedViews struct {
	views []viewlog.View
}

func (r *recordedViews) Record(_ context.Context, v viewlog.View) error {
	r.views = append(r.views, v)
	return nil
}

func (r *recordedViews) Close() error { return nil }

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Title:       "Hana & Ken",
		Catchphrase: "Forever starts today",
		Root:        "/album",
		Items: []gallery.Item{
			{Source: "/album/ceremony/vows.jpg", AltText: "Vows", Caption: "The vows", Category: "ceremony"},
			{Source: "/album/party/cake.jpg", AltText: "Cake", Caption: "Cutting the cake", Category: "party"},
			{Source: "/album/party/dance.jpg", AltText: "Dance", Caption: "First dance", Category: "party"},
		},
	}
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	return newTestApplicationWith(t, config.Config{}, &recordedViews{})
}

func newTestApplicationWith(t *testing.T, cfg config.Config, views viewlog.Recorder) *Application {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	screen.SetSize(80, 24)
	app, err := NewApplication(Options{
		Config:  cfg,
		Catalog: testCatalog(),
		Views:   views,
		Screen:  screen,
	})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	t.Cleanup(func() {
		_ = app.Close()
	})
	return app
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string, fn func()) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		return helperProcessCommand(exitCode, name, args...)
	}
	defer func() {
		commandBuilder = orig
	}()
	fn()
}

func helperProcessCommand(exitCode int, name string, args ...string) *exec.Cmd {
	cmdArgs := []string{"-test.run=TestHelperProcess", "--", name}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.Command(os.Args[0], cmdArgs...)
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
	)
	return cmd
}

func assertCommandRecorded(t *testing.T, recorded, want []string) {
	t.Helper()
	if len(recorded) != len(want) {
		t.Fatalf("expected command %v, got %v", want, recorded)
	}
	for i := range want {
		if recorded[i] != want[i] {
			t.Fatalf("expected command %v, got %v", want, recorded)
		}
	}
}

package app

import (
	"errors"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var (
	errClipboardUnavailable = errors.New("no clipboard command found")
	errOpenerUnavailable    = errors.New("no image viewer found")
)

// commandBuilder is swapped in tests.
var commandBuilder = exec.Command

func (app *Application) handleClipboard() bool {
	src := app.state.CurrentSource()
	if src == "" {
		return false
	}
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.LastError = errClipboardUnavailable
		return true
	}

	text := src
	if !isRemoteSource(src) {
		text = normalizeClipboardPath(src, runtime.GOOS)
	}
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("%s: %w", app.clipboardCmd[0], err)
		return true
	}
	app.state.LastError = nil
	app.state.MarkYanked(time.Now())
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

func isRemoteSource(src string) bool {
	return strings.Contains(src, "://")
}

// handleOpenExternal hands the current photo to the desktop viewer. The
// viewer runs detached; the gallery keeps the terminal.
func (app *Application) handleOpenExternal() bool {
	src := app.state.CurrentSource()
	if src == "" {
		return false
	}
	if !app.state.OpenerAvailable || len(app.openerCmd) == 0 {
		app.state.LastError = errOpenerUnavailable
		return true
	}

	args := append(append([]string{}, app.openerCmd[1:]...), src)
	cmd := commandBuilder(app.openerCmd[0], args...)
	if err := cmd.Start(); err != nil {
		app.state.LastError = fmt.Errorf("%s: %w", app.openerCmd[0], err)
		return true
	}
	go func() { _ = cmd.Wait() }()
	app.state.LastError = nil
	return true
}

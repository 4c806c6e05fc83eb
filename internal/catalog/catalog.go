// Package catalog loads the photos a gallery can show, either from a manifest
// file (YAML or TOML) or by scanning a directory of category folders.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/lightbox/internal/gallery"
)

// ErrUnsupportedManifest is returned for manifest files with an unknown extension.
var ErrUnsupportedManifest = errors.New("unsupported manifest format")

// Catalog is the full, unfiltered set of catalogued photos.
type Catalog struct {
	Title       string
	Catchphrase string
	Items       []gallery.Item
	// Root is the manifest file or scanned directory the catalog came from.
	Root string
}

// Categories lists the filter choices for the catalog, wildcard first.
func (c *Catalog) Categories() []string {
	if c == nil {
		return []string{gallery.AllCategories}
	}
	return gallery.Categories(c.Items)
}

// Filter returns the index for category.
func (c *Catalog) Filter(category string) []gallery.Descriptor {
	if c == nil {
		return nil
	}
	return gallery.FilterIndex(c.Items, category)
}

// Load reads a catalog from a directory or manifest path.
func Load(path string) (*Catalog, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if info.IsDir() {
		return ScanDir(abs)
	}

	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		return loadManifest(abs, decodeYAML)
	case ".toml":
		return loadManifest(abs, decodeTOML)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedManifest, filepath.Base(abs))
	}
}

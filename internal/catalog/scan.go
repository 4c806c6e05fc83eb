package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/lightbox/internal/fs"
	"github.com/kk-code-lab/lightbox/internal/gallery"
)

// RootCategory is assigned to images found directly in the scanned directory.
const RootCategory = "misc"

// ScanDir builds a catalog from dir. Images directly inside dir fall under
// RootCategory; each visible subdirectory becomes a category of its own.
// Only one level of subdirectories is read.
func ScanDir(dir string) (*Catalog, error) {
	entries, err := fsutil.ReadEntries(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var rootItems, items []gallery.Item
	for _, entry := range entries {
		if entry.IsHidden() {
			continue
		}
		if entry.IsDir {
			sub, err := fsutil.ReadEntries(entry.FullPath)
			if err != nil {
				continue
			}
			items = append(items, imagesIn(sub, entry.Name)...)
			continue
		}
		if entry.IsImage() {
			rootItems = append(rootItems, itemFromEntry(entry, RootCategory))
		}
	}

	return &Catalog{
		Title: filepath.Base(dir),
		Items: append(items, rootItems...),
		Root:  dir,
	}, nil
}

func imagesIn(entries []fsutil.Entry, category string) []gallery.Item {
	var items []gallery.Item
	for _, entry := range entries {
		if entry.IsHidden() || !entry.IsImage() {
			continue
		}
		items = append(items, itemFromEntry(entry, category))
	}
	return items
}

func itemFromEntry(entry fsutil.Entry, category string) gallery.Item {
	return gallery.Item{
		Source:   entry.FullPath,
		AltText:  entry.Name,
		Caption:  captionFromName(entry.Name),
		Category: category,
	}
}

var captionReplacer = strings.NewReplacer("_", " ", "-", " ")

func captionFromName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Join(strings.Fields(captionReplacer.Replace(stem)), " ")
}

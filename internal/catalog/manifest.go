package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	"gopkg.in/yaml.v3"
)

type manifest struct {
	Title       string          `yaml:"title" toml:"title"`
	Catchphrase string          `yaml:"catchphrase" toml:"catchphrase"`
	Images      []manifestImage `yaml:"images" toml:"images"`
}

type manifestImage struct {
	Src      string `yaml:"src" toml:"src"`
	Alt      string `yaml:"alt" toml:"alt"`
	Caption  string `yaml:"caption" toml:"caption"`
	Category string `yaml:"category" toml:"category"`
}

type decodeFunc func(data []byte, m *manifest) error

func decodeYAML(data []byte, m *manifest) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		// An empty document decodes to io.EOF; treat it as an empty manifest.
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return err
	}
	return nil
}

func decodeTOML(data []byte, m *manifest) error {
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func loadManifest(path string, decode decodeFunc) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := decode(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}
	items, err := m.items(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", filepath.Base(path), err)
	}
	return &Catalog{
		Title:       strings.TrimSpace(m.Title),
		Catchphrase: strings.TrimSpace(m.Catchphrase),
		Items:       items,
		Root:        path,
	}, nil
}

func (m manifest) items(baseDir string) ([]gallery.Item, error) {
	items := make([]gallery.Item, 0, len(m.Images))
	for i, img := range m.Images {
		src := strings.TrimSpace(img.Src)
		if src == "" {
			return nil, fmt.Errorf("image %d: missing src", i+1)
		}
		if !isRemote(src) && !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, filepath.FromSlash(src))
		}
		alt := strings.TrimSpace(img.Alt)
		if alt == "" {
			alt = filepath.Base(src)
		}
		items = append(items, gallery.Item{
			Source:   src,
			AltText:  alt,
			Caption:  strings.TrimSpace(img.Caption),
			Category: strings.TrimSpace(img.Category),
		})
	}
	return items, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

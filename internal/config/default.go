package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigTOML = `# lightbox configuration
# Every key can be overridden with LIGHTBOX_<SECTION>_<KEY>, e.g. LIGHTBOX_UI_LANG=ja.

[gallery]
catalog = ""          # manifest (.yaml/.toml) or photo directory
category = "all"

[gesture]
threshold = 50        # minimum swipe distance
cell_width = 8        # distance units per terminal column
cell_height = 16      # distance units per terminal row

[effects]
enabled = true
typewriter_delay = "2s"
typewriter_interval = "100ms"
hearts_interval = "3s"
rain_count = 50
rain_spacing = "100ms"

[preload]
workers = 2
cache_size = 32
max_dimension = 1024

[viewlog]
enabled = true

[log]
level = "info"

[ui]
lang = "en"           # en or ja
`

// WriteDefault writes the commented default config to path, creating the
// parent directory. An existing file is left untouched.
func WriteDefault(path string) error {
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return err
		}
		path = def
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

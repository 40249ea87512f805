package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the project configuration file discovered upward from
// each formatted path.
const ConfigFileName = "pumlfmt.toml"

// ErrNegativeIndent indicates an invalid [format].indent value.
var ErrNegativeIndent = errors.New("[format].indent must not be negative")

// Config captures formatter settings from a pumlfmt.toml file. Zero-valued
// sections mean "not set": the CLI layer applies its own defaults and
// explicit flags always win over the file.
type Config struct {
	Format FormatSection `toml:"format"`
	Files  FilesSection  `toml:"files"`
}

// FormatSection mirrors [format].
type FormatSection struct {
	Indent *int  `toml:"indent"`
	Tabs   *bool `toml:"tabs"`
}

// FilesSection mirrors [files].
type FilesSection struct {
	Extensions []string `toml:"extensions"`
}

// FindConfig walks upward from dir looking for pumlfmt.toml and returns the
// first hit. Один конфиг на проект: поиск останавливается на первом найденном.
func FindConfig(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadConfig parses and validates a pumlfmt.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Format.Indent != nil && *cfg.Format.Indent < 0 {
		return nil, fmt.Errorf("%s: %w (got %d)", path, ErrNegativeIndent, *cfg.Format.Indent)
	}
	return &cfg, nil
}

// LoadConfigFor discovers and loads the configuration governing dir.
// Missing configuration is not an error: the returned Config is nil.
func LoadConfigFor(dir string) (*Config, error) {
	path, ok := FindConfig(dir)
	if !ok {
		return nil, nil
	}
	return LoadConfig(path)
}

package view

import (
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type themeFile struct {
	Name      string                      `yaml:"name"`
	Version   string                      `yaml:"version"`
	Tokens    map[string]string           `yaml:"tokens"`
	Templates map[string]string           `yaml:"templates"`
	Variants  map[string]themeVariantFile `yaml:"variants"`
}

type themeVariantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
}

// LoadThemeManifest reads a YAML (or JSON) theme manifest from fsys.
func LoadThemeManifest(fsys fs.FS, path string) (*theme.Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("view: read theme manifest %s: %w", path, err)
	}
	var raw themeFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("view: parse theme manifest %s: %w", path, err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("view: theme manifest %s has no name", path)
	}

	manifest := &theme.Manifest{
		Name:      raw.Name,
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, variant := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
			}
		}
	}
	return manifest, nil
}

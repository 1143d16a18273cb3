package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the shape of a `timu.yaml` project manifest: where the
// module root lives, which extension its source files use, and (when
// building more than one entry point) which modules to treat as build
// roots. Grounded in the teacher's internal/ext/config.go yaml-based
// configuration loading, retargeted from extension-binding config onto
// compiler project configuration.
type ProjectConfig struct {
	Root         string   `yaml:"root"`
	Extension    string   `yaml:"extension,omitempty"`
	EntryModules []string `yaml:"entry_modules,omitempty"`
}

// LoadManifest reads and parses a timu.yaml project manifest from path.
func LoadManifest(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Extension == "" {
		cfg.Extension = SourceFileExt
	}
	return &cfg, nil
}

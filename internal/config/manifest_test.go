package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestDefaultsExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: ./src\n"), 0o644))

	cfg, err := config.LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, "./src", cfg.Root)
	require.Equal(t, config.SourceFileExt, cfg.Extension)
}

func TestLoadManifestWithEntryModules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timu.yaml")
	yaml := "root: ./src\nextension: .tmu\nentry_modules:\n  - app.main\n  - app.lib\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, ".tmu", cfg.Extension)
	require.Equal(t, []string{"app.main", "app.lib"}, cfg.EntryModules)
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := config.LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

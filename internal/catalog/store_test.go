package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/skychart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "config.csv"), filepath.Join(dir, "sources.csv"), nil), dir
}

func TestLoadConfigCreatesFromTemplate(t *testing.T) {
	store, _ := newTestStore(t)

	cfg, err := store.LoadConfig()
	require.NoError(t, err)
	assert.InDelta(t, 40.0, cfg.Latitude, 1e-12)
	assert.InDelta(t, -105.0, cfg.Longitude, 1e-12)
	assert.Equal(t, 1200, cfg.WindowWidth)

	data, err := os.ReadFile(store.ConfigPath())
	require.NoError(t, err)
	tmpl, err := Template(ConfigTemplate)
	require.NoError(t, err)
	assert.Equal(t, tmpl, data)
}

func TestLoadConfigKeepsExistingFile(t *testing.T) {
	store, _ := newTestStore(t)
	content := "header\n-33.9|18.4|15|80|800|600|3\n"
	require.NoError(t, os.WriteFile(store.ConfigPath(), []byte(content), 0644))

	cfg, err := store.LoadConfig()
	require.NoError(t, err)
	assert.InDelta(t, -33.9, cfg.Latitude, 1e-12)
	assert.Equal(t, 600, cfg.WindowHeight)
}

func TestLoadConfigMalformed(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(store.ConfigPath(), []byte("header\n1|2|3\n"), 0644))

	_, err := store.LoadConfig()
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestLoadCatalogCreatesFromTemplate(t *testing.T) {
	store, _ := newTestStore(t)

	cat, err := store.LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, cat.Types, 4)
	require.NotEmpty(t, cat.Sources)
	assert.Equal(t, "Polaris", cat.Sources[0].Name)

	_, err = os.Stat(store.CatalogPath())
	assert.NoError(t, err)
}

func TestSaveThenLoadCatalog(t *testing.T) {
	store, dir := newTestStore(t)

	cat, err := store.LoadCatalog()
	require.NoError(t, err)

	cat.Sources[0].Visible = !cat.Sources[0].Visible
	cat.Sources[1].TypeIndex = cat.MaxTypeIndex()
	require.NoError(t, store.SaveCatalog(cat.Types, cat.Sources))

	reloaded, err := store.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, cat.Types, reloaded.Types)
	require.Len(t, reloaded.Sources, len(cat.Sources))
	for i := range cat.Sources {
		assert.Equal(t, cat.Sources[i].Name, reloaded.Sources[i].Name)
		assert.Equal(t, cat.Sources[i].Visible, reloaded.Sources[i].Visible)
		assert.Equal(t, cat.Sources[i].TypeIndex, reloaded.Sources[i].TypeIndex)
		assert.InDelta(t, cat.Sources[i].RightAscension, reloaded.Sources[i].RightAscension, 0.00051/3600)
		assert.InDelta(t, cat.Sources[i].Declination, reloaded.Sources[i].Declination, 0.00051/3600)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestSaveCatalogFailsInMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "config.csv"), filepath.Join(dir, "gone", "sources.csv"), nil)

	err := store.SaveCatalog(nil, nil)
	assert.Error(t, err)
}

func TestSaveCatalogInvalidNameKeepsOldFile(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.LoadCatalog()
	require.NoError(t, err)
	before, err := os.ReadFile(store.CatalogPath())
	require.NoError(t, err)

	err = store.SaveCatalog([]domain.SourceType{{MarkerDiameter: 1, FillColor: "#000"}},
		[]domain.Source{{Name: "bad\nname"}})
	require.Error(t, err)

	after, err := os.ReadFile(store.CatalogPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEnsureTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sources.csv")

	created, err := EnsureTemplate(path, CatalogTemplate)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureTemplate(path, CatalogTemplate)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = EnsureTemplate(filepath.Join(t.TempDir(), "x"), "missing.txt")
	assert.Error(t, err)
}

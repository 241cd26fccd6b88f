package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmcdole/skychart/internal/domain"
)

// FileStore implements domain.CatalogStore on two text files.
// Missing files are created from the bundled templates before parsing.
type FileStore struct {
	configPath  string
	catalogPath string
	logger      *slog.Logger
}

// NewFileStore creates a store for the given config and catalog paths
func NewFileStore(configPath, catalogPath string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		configPath:  configPath,
		catalogPath: catalogPath,
		logger:      logger,
	}
}

// ConfigPath returns the observer config path
func (s *FileStore) ConfigPath() string { return s.configPath }

// CatalogPath returns the catalog path
func (s *FileStore) CatalogPath() string { return s.catalogPath }

// LoadConfig reads the observer config, creating it from the template if absent
func (s *FileStore) LoadConfig() (domain.ObserverConfig, error) {
	if err := s.ensure(s.configPath, ConfigTemplate); err != nil {
		return domain.ObserverConfig{}, err
	}

	f, err := os.Open(s.configPath)
	if err != nil {
		return domain.ObserverConfig{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f, s.configPath)
	if err != nil {
		return domain.ObserverConfig{}, err
	}

	s.logger.Info("loaded observer config", "path", s.configPath, "coordinates", cfg.Coordinates())
	return cfg, nil
}

// LoadCatalog reads types and sources, creating the file from the template if absent
func (s *FileStore) LoadCatalog() (domain.Catalog, error) {
	if err := s.ensure(s.catalogPath, CatalogTemplate); err != nil {
		return domain.Catalog{}, err
	}

	f, err := os.Open(s.catalogPath)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	cat, err := ParseCatalog(f, s.catalogPath)
	if err != nil {
		return domain.Catalog{}, err
	}

	s.logger.Info("loaded catalog", "path", s.catalogPath, "types", len(cat.Types), "sources", len(cat.Sources))
	return cat, nil
}

// SaveCatalog replaces the catalog file. The new content is written to a
// temporary file in the same directory and renamed over the old one.
func (s *FileStore) SaveCatalog(types []domain.SourceType, sources []domain.Source) error {
	dir := filepath.Dir(s.catalogPath)
	tmp, err := os.CreateTemp(dir, ".sources-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}
	if err := WriteCatalog(tmp, types, sources); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp catalog: %w", err)
	}
	if err := os.Rename(tmpName, s.catalogPath); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	s.logger.Info("sources saved", "path", s.catalogPath, "sources", len(sources))
	return nil
}

func (s *FileStore) ensure(path, template string) error {
	created, err := EnsureTemplate(path, template)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("created file from default template", "path", path, "template", template)
	}
	return nil
}

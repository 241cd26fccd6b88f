package domain

import "time"

// CatalogStore loads and persists the observer config and the source catalog.
type CatalogStore interface {
	LoadConfig() (ObserverConfig, error)
	LoadCatalog() (Catalog, error)
	SaveCatalog(types []SourceType, sources []Source) error
}

// StateStore keeps session state between runs (bbolt + memory).
type StateStore interface {
	// === Chart time ===
	GetLastTime() (time.Time, bool)
	SaveLastTime(t time.Time) error

	// === Menu ===
	GetCursor() (int, bool)
	SaveCursor(row int) error

	// === Bookmarks ===
	GetBookmarks() ([]time.Time, bool)
	AddBookmark(t time.Time) error
	ClearBookmarks() error

	Close() error
}

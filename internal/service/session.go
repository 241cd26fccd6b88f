package service

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mmcdole/skychart/internal/clock"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/projector"
)

// ChartSession owns the mutable view state: the chart's local time and the
// catalog with its per-source visibility and type. Not safe for concurrent use.
type ChartSession struct {
	obs     domain.ObserverConfig
	catalog domain.Catalog
	local   time.Time
	loc     *time.Location

	store  domain.CatalogStore
	state  domain.StateStore // Optional
	logger *slog.Logger

	now   func() time.Time
	dirty bool
}

// NewChartSession creates a session starting at the current time.
// state may be nil, in which case nothing outlives the process but the catalog.
func NewChartSession(
	obs domain.ObserverConfig,
	catalog domain.Catalog,
	store domain.CatalogStore,
	state domain.StateStore,
	loc *time.Location,
	logger *slog.Logger,
) *ChartSession {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	s := &ChartSession{
		obs:     obs,
		catalog: catalog,
		loc:     loc,
		store:   store,
		state:   state,
		logger:  logger,
		now:     time.Now,
	}
	s.local = s.wallClock()
	return s
}

// wallClock returns now in the session zone, truncated to the minute
// so the chart time always matches what the time field can show
func (s *ChartSession) wallClock() time.Time {
	return s.now().In(s.loc).Truncate(time.Minute)
}

// Resume moves the chart to the last time saved in session state.
// Returns false when there is nothing to resume.
func (s *ChartSession) Resume() bool {
	if s.state == nil {
		return false
	}
	t, ok := s.state.GetLastTime()
	if !ok || t.IsZero() {
		return false
	}
	s.local = t.In(s.loc)
	s.logger.Info("resumed chart time", "local", clock.FormatCivil(s.local))
	return true
}

// === Accessors ===

// Observer returns the observer config
func (s *ChartSession) Observer() domain.ObserverConfig { return s.obs }

// Catalog returns the catalog. Callers must not mutate its slices.
func (s *ChartSession) Catalog() domain.Catalog { return s.catalog }

// Local returns the chart's local time
func (s *ChartSession) Local() time.Time { return s.local }

// Location returns the session time zone
func (s *ChartSession) Location() *time.Location { return s.loc }

// Dirty reports whether the catalog changed since load
func (s *ChartSession) Dirty() bool { return s.dirty }

// LST returns the sidereal time of the chart's local time
func (s *ChartSession) LST() clock.SiderealTime {
	return clock.LocalToLST(s.local, s.obs)
}

// Times returns the local, UTC and LST display strings
func (s *ChartSession) Times() clock.Times {
	return clock.DisplayTimes(s.local, s.obs)
}

// Daylight returns sunrise and sunset for the chart's local date
func (s *ChartSession) Daylight() clock.Daylight {
	return clock.DaylightFor(s.local, s.obs)
}

// Positions projects every source at the current LST.
// LST is computed once for the whole batch.
func (s *ChartSession) Positions() []domain.SourcePosition {
	return projector.ProjectAll(s.catalog.Sources, s.LST(), s.obs)
}

// Furniture returns the static chart grid
func (s *ChartSession) Furniture() projector.Furniture {
	return projector.ChartFurniture(s.obs)
}

// Paths returns the diurnal circles of the visible sources
func (s *ChartSession) Paths() []projector.Circle {
	var paths []projector.Circle
	for _, src := range s.catalog.Sources {
		if src.Visible {
			paths = append(paths, projector.Path(src, s.obs))
		}
	}
	return paths
}

// === Time ===

// OnTimeEdited parses YYYY-MM-DD HH:MM and moves the chart there.
// On failure the chart time is left unchanged and the ParseError returned.
func (s *ChartSession) OnTimeEdited(text string) error {
	t, err := clock.ParseLocal(text, s.loc)
	if err != nil {
		s.logger.Warn("invalid time entered", "input", text, "error", err)
		return err
	}
	s.local = t
	s.logger.Debug("chart time set", "local", clock.FormatCivil(t))
	return nil
}

// OnTimeShift moves the chart time by d
func (s *ChartSession) OnTimeShift(d time.Duration) {
	s.local = s.local.Add(d)
	s.logger.Debug("chart time shifted", "delta", d, "local", clock.FormatCivil(s.local))
}

// ResetToNow moves the chart to the current wall-clock time
func (s *ChartSession) ResetToNow() {
	s.local = s.wallClock()
	s.logger.Debug("chart time reset", "local", clock.FormatCivil(s.local))
}

// === Sources ===

func (s *ChartSession) source(index int) (*domain.Source, error) {
	if index < 0 || index >= len(s.catalog.Sources) {
		return nil, fmt.Errorf("source %d: %w", index, domain.ErrSourceNotFound)
	}
	return &s.catalog.Sources[index], nil
}

// OnVisibilityToggle sets whether a source's path and label are drawn
func (s *ChartSession) OnVisibilityToggle(index int, visible bool) error {
	src, err := s.source(index)
	if err != nil {
		return err
	}
	if src.Visible != visible {
		src.Visible = visible
		s.dirty = true
	}
	return nil
}

// ToggleVisibility flips a source's visibility and returns the new value
func (s *ChartSession) ToggleVisibility(index int) (bool, error) {
	src, err := s.source(index)
	if err != nil {
		return false, err
	}
	visible := !src.Visible
	return visible, s.OnVisibilityToggle(index, visible)
}

// OnTypeChange assigns a type to a source. The type must exist.
func (s *ChartSession) OnTypeChange(index, typeIndex int) error {
	src, err := s.source(index)
	if err != nil {
		return err
	}
	if typeIndex < 0 || typeIndex > s.catalog.MaxTypeIndex() {
		return fmt.Errorf("type %d for %q: %w", typeIndex, src.Name, domain.ErrTypeOutOfRange)
	}
	if src.TypeIndex != typeIndex {
		src.TypeIndex = typeIndex
		s.dirty = true
	}
	return nil
}

// StepType moves a source's type by delta, clamped to the type list
func (s *ChartSession) StepType(index, delta int) (int, error) {
	src, err := s.source(index)
	if err != nil {
		return 0, err
	}
	next := src.TypeIndex + delta
	if next < 0 {
		next = 0
	}
	if last := s.catalog.MaxTypeIndex(); next > last {
		next = last
	}
	return next, s.OnTypeChange(index, next)
}

// === Bookmarks ===

// Bookmark saves the chart's local time for later recall
func (s *ChartSession) Bookmark() error {
	if s.state == nil {
		return nil
	}
	if err := s.state.AddBookmark(s.local); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	s.logger.Info("bookmark added", "local", clock.FormatCivil(s.local))
	return nil
}

// NextBookmark moves to the first bookmark after the chart time,
// wrapping to the earliest. Returns false when there are none.
func (s *ChartSession) NextBookmark() bool {
	if s.state == nil {
		return false
	}
	marks, ok := s.state.GetBookmarks()
	if !ok || len(marks) == 0 {
		return false
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].Before(marks[j]) })

	next := marks[0]
	for _, m := range marks {
		if m.After(s.local) {
			next = m
			break
		}
	}
	s.local = next.In(s.loc)
	return true
}

// === Menu state ===

// Cursor returns the saved menu row
func (s *ChartSession) Cursor() int {
	if s.state == nil {
		return 0
	}
	row, ok := s.state.GetCursor()
	if !ok || row < 0 || row >= len(s.catalog.Sources) {
		return 0
	}
	return row
}

// SaveCursor records the menu row for the next run
func (s *ChartSession) SaveCursor(row int) {
	if s.state == nil {
		return
	}
	if err := s.state.SaveCursor(row); err != nil {
		s.logger.Warn("failed to save cursor", "error", err)
	}
}

// === Lifecycle ===

// Shutdown writes the catalog back. Exit should proceed only when saved is
// true; on error the session stays usable and the caller decides.
// Session state failures are logged and do not block the exit.
func (s *ChartSession) Shutdown() (bool, error) {
	if err := s.store.SaveCatalog(s.catalog.Types, s.catalog.Sources); err != nil {
		s.logger.Error("failed to save catalog", "error", err)
		return false, fmt.Errorf("failed to save catalog: %w", err)
	}
	s.dirty = false

	if s.state != nil {
		if err := s.state.SaveLastTime(s.local); err != nil {
			s.logger.Warn("failed to save chart time", "error", err)
		}
	}

	s.logger.Info("session closed", "sources", len(s.catalog.Sources))
	return true, nil
}

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/skychart/internal/adapter"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/projector"
	"github.com/mmcdole/skychart/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogStore struct {
	saved   domain.Catalog
	saves   int
	saveErr error
}

func (f *fakeCatalogStore) LoadConfig() (domain.ObserverConfig, error) { return testObserver(), nil }

func (f *fakeCatalogStore) LoadCatalog() (domain.Catalog, error) { return testCatalog(), nil }

func (f *fakeCatalogStore) SaveCatalog(types []domain.SourceType, sources []domain.Source) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = domain.Catalog{
		Types:   append([]domain.SourceType(nil), types...),
		Sources: append([]domain.Source(nil), sources...),
	}
	return nil
}

func testObserver() domain.ObserverConfig {
	return domain.ObserverConfig{
		Latitude: 40, Longitude: -105,
		ElevationMin: 20, ElevationMax: 85,
		WindowWidth: 1200, WindowHeight: 900,
		DegreeScaling: 4,
	}
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Types: []domain.SourceType{
			{MarkerDiameter: 8, FillColor: "#FFD700"},
			{MarkerDiameter: 6, FillColor: "#00BFFF"},
		},
		Sources: []domain.Source{
			{Name: "Vega", RightAscension: 18.6167, Declination: 38.78, TypeIndex: 0, Visible: true},
			{Name: "Deneb", RightAscension: 20.69, Declination: 45.28, TypeIndex: 1},
			{Name: "Cyg A", RightAscension: 19.99, Declination: 40.73, TypeIndex: 1, Visible: true},
		},
	}
}

var denver = time.FixedZone("MST", -7*3600)

func newTestSession(t *testing.T) (*ChartSession, *fakeCatalogStore, *store.StateStore) {
	t.Helper()
	cs := &fakeCatalogStore{}
	state, err := store.NewStateStore("")
	require.NoError(t, err)

	s := NewChartSession(testObserver(), testCatalog(), cs, state, denver, adapter.NullLogger())
	s.now = func() time.Time { return time.Date(2025, time.June, 1, 4, 30, 45, 0, time.UTC) }
	s.ResetToNow()
	return s, cs, state
}

func TestResetToNowUsesSessionZone(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.Equal(t, "2025-05-31 21:30", s.Times().Local)
	assert.Equal(t, "2025-06-01 04:30", s.Times().UTC)
	assert.Equal(t, 0, s.Local().Second())
}

func TestOnTimeEdited(t *testing.T) {
	s, _, _ := newTestSession(t)

	require.NoError(t, s.OnTimeEdited("2025-03-20 02:01"))
	assert.Equal(t, "2025-03-20 02:01", s.Times().Local)
	assert.Equal(t, "2025-03-20 09:01", s.Times().UTC)
}

func TestOnTimeEditedInvalidKeepsState(t *testing.T) {
	s, _, _ := newTestSession(t)
	before := s.Local()
	positions := s.Positions()

	err := s.OnTimeEdited("2025-13-40 25:99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))

	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "2025-13-40 25:99", perr.Input)

	assert.True(t, before.Equal(s.Local()))
	assert.Equal(t, positions, s.Positions())
}

func TestOnTimeShift(t *testing.T) {
	s, _, _ := newTestSession(t)
	before := s.Local()

	s.OnTimeShift(time.Hour)
	assert.Equal(t, time.Hour, s.Local().Sub(before))

	s.OnTimeShift(-2 * time.Hour)
	assert.Equal(t, -time.Hour, s.Local().Sub(before))
}

func TestPositionsFollowTime(t *testing.T) {
	s, _, _ := newTestSession(t)

	first := s.Positions()
	require.Len(t, first, 3)
	for i, p := range first {
		assert.Equal(t, i, p.Index)
	}

	s.OnTimeShift(6 * time.Hour)
	second := s.Positions()
	assert.NotEqual(t, first[0].Position, second[0].Position)

	// Distance from the pole stays fixed as the chart turns
	pole := projector.PoleOffsetY(s.Observer())
	r := projector.Radius(38.78, 4)
	for _, p := range []domain.ChartPosition{first[0].Position, second[0].Position} {
		dx, dy := p.X, p.Y-pole
		assert.InDelta(t, r*r, dx*dx+dy*dy, 1e-6)
	}
}

func TestVisibilityToggle(t *testing.T) {
	s, _, _ := newTestSession(t)

	require.NoError(t, s.OnVisibilityToggle(1, true))
	assert.True(t, s.Catalog().Sources[1].Visible)
	assert.True(t, s.Dirty())
	assert.Len(t, s.Paths(), 3)

	visible, err := s.ToggleVisibility(0)
	require.NoError(t, err)
	assert.False(t, visible)
	assert.Len(t, s.Paths(), 2)

	err = s.OnVisibilityToggle(3, true)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestVisibilityDoesNotMovePositions(t *testing.T) {
	s, _, _ := newTestSession(t)
	before := s.Positions()[1].Position

	require.NoError(t, s.OnVisibilityToggle(1, true))
	require.NoError(t, s.OnTypeChange(1, 0))
	assert.Equal(t, before, s.Positions()[1].Position)
}

func TestOnTypeChange(t *testing.T) {
	s, _, _ := newTestSession(t)

	require.NoError(t, s.OnTypeChange(0, 1))
	assert.Equal(t, 1, s.Catalog().Sources[0].TypeIndex)

	assert.ErrorIs(t, s.OnTypeChange(0, 2), domain.ErrTypeOutOfRange)
	assert.ErrorIs(t, s.OnTypeChange(0, -1), domain.ErrTypeOutOfRange)
	assert.ErrorIs(t, s.OnTypeChange(-1, 0), domain.ErrSourceNotFound)
	assert.Equal(t, 1, s.Catalog().Sources[0].TypeIndex)
}

func TestStepTypeClamps(t *testing.T) {
	s, _, _ := newTestSession(t)

	got, err := s.StepType(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = s.StepType(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = s.StepType(0, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestShutdownSavesCatalogAndTime(t *testing.T) {
	s, cs, state := newTestSession(t)
	require.NoError(t, s.OnVisibilityToggle(1, true))

	saved, err := s.Shutdown()
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, s.Dirty())

	require.Equal(t, 1, cs.saves)
	assert.True(t, cs.saved.Sources[1].Visible)

	last, ok := state.GetLastTime()
	require.True(t, ok)
	assert.True(t, last.Equal(s.Local()))
}

func TestShutdownFailureBlocksExit(t *testing.T) {
	s, cs, _ := newTestSession(t)
	cs.saveErr = errors.New("disk full")
	require.NoError(t, s.OnVisibilityToggle(1, true))

	saved, err := s.Shutdown()
	assert.False(t, saved)
	assert.ErrorContains(t, err, "disk full")
	assert.True(t, s.Dirty())
}

func TestResume(t *testing.T) {
	s, _, state := newTestSession(t)
	assert.False(t, s.Resume())

	at := time.Date(2024, time.December, 21, 23, 0, 0, 0, denver)
	require.NoError(t, state.SaveLastTime(at))
	assert.True(t, s.Resume())
	assert.Equal(t, "2024-12-21 23:00", s.Times().Local)
}

func TestBookmarksCycle(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.False(t, s.NextBookmark())

	require.NoError(t, s.OnTimeEdited("2025-01-01 20:00"))
	require.NoError(t, s.Bookmark())
	require.NoError(t, s.OnTimeEdited("2025-01-02 20:00"))
	require.NoError(t, s.Bookmark())

	require.NoError(t, s.OnTimeEdited("2025-01-01 12:00"))
	require.True(t, s.NextBookmark())
	assert.Equal(t, "2025-01-01 20:00", s.Times().Local)

	require.True(t, s.NextBookmark())
	assert.Equal(t, "2025-01-02 20:00", s.Times().Local)

	// Wraps to the earliest
	require.True(t, s.NextBookmark())
	assert.Equal(t, "2025-01-01 20:00", s.Times().Local)
}

func TestCursor(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.Equal(t, 0, s.Cursor())

	s.SaveCursor(2)
	assert.Equal(t, 2, s.Cursor())

	s.SaveCursor(9)
	assert.Equal(t, 0, s.Cursor())
}

func TestSessionWithoutState(t *testing.T) {
	s := NewChartSession(testObserver(), testCatalog(), &fakeCatalogStore{}, nil, nil, nil)

	assert.False(t, s.Resume())
	assert.False(t, s.NextBookmark())
	assert.NoError(t, s.Bookmark())
	assert.Equal(t, 0, s.Cursor())

	saved, err := s.Shutdown()
	require.NoError(t, err)
	assert.True(t, saved)
}

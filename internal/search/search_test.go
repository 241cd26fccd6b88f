package search

import (
	"testing"

	"github.com/mmcdole/skychart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchSources() []domain.Source {
	return []domain.Source{
		{Name: "Polaris"},
		{Name: "Vega"},
		{Name: "Cyg A"},
		{Name: "Cas A"},
		{Name: "Vir A"},
	}
}

func TestFilterEmptyQueryKeepsOrder(t *testing.T) {
	idx := NewSourceIndex(searchSources())

	matches := idx.Filter("  ")
	require.Len(t, matches, 5)
	for i, m := range matches {
		assert.Equal(t, i, m.Index)
	}
}

func TestFilterMatchesFuzzily(t *testing.T) {
	idx := NewSourceIndex(searchSources())

	matches := idx.Filter("VEG")
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, []int{0, 1, 2}, matches[0].MatchedIndexes)

	assert.Empty(t, idx.Filter("xyz"))
}

func TestFindSource(t *testing.T) {
	sources := searchSources()

	i, err := FindSource(sources, "vega")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = FindSource(sources, "Pol")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	// Exact match beats other subsequence hits
	i, err = FindSource(sources, "cas a")
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestFindSourceMisses(t *testing.T) {
	_, err := FindSource(searchSources(), "andromeda")
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)

	_, err = FindSource(searchSources(), "")
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

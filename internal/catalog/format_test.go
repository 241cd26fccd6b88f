package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/skychart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `Source Size|Source Color
8|#FFD700
6|#00BFFF

Source|Right Ascension|Declination|Type|Trace
Vega|18:37:00.120|+38:46:48.000|0|1
Sirius|06:45:08.920|-16:42:58.000|1|0
`

func TestParseConfig(t *testing.T) {
	text := "Latitude|Longitude|Minimum Elevation|Maximum Elevation|Window Width|Window Height|Degree Scaling\n" +
		"40.0|-105.0|20|85|1200|900|4.0\n"

	cfg, err := ParseConfig(strings.NewReader(text), "config.csv")
	require.NoError(t, err)

	assert.Equal(t, domain.ObserverConfig{
		Latitude:      40,
		Longitude:     -105,
		ElevationMin:  20,
		ElevationMax:  85,
		WindowWidth:   1200,
		WindowHeight:  900,
		DegreeScaling: 4,
	}, cfg)
}

func TestParseConfigErrors(t *testing.T) {
	const header = "h\n"
	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{"empty", "", "missing header"},
		{"no data", header, "missing data row"},
		{"blank data", header + "\n", "missing data row"},
		{"too few columns", header + "40|-105|20|85|1200|900\n", "expected 7 columns"},
		{"too many columns", header + "40|-105|20|85|1200|900|4|1\n", "expected 7 columns"},
		{"non numeric", header + "north|-105|20|85|1200|900|4\n", "latitude"},
		{"float window", header + "40|-105|20|85|1200.5|900|4\n", "window_width"},
		{"latitude range", header + "91|-105|20|85|1200|900|4\n", "Latitude"},
		{"inverted elevation", header + "40|-105|85|20|1200|900|4\n", "ElevationMin"},
		{"zero scaling", header + "40|-105|20|85|1200|900|0\n", "DegreeScaling"},
		{"negative window", header + "40|-105|20|85|-5|900|4\n", "WindowWidth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.text), "config.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(sampleCatalog), "sources.csv")
	require.NoError(t, err)

	require.Len(t, cat.Types, 2)
	assert.Equal(t, domain.SourceType{MarkerDiameter: 8, FillColor: "#FFD700"}, cat.Types[0])
	assert.Equal(t, domain.SourceType{MarkerDiameter: 6, FillColor: "#00BFFF"}, cat.Types[1])

	require.Len(t, cat.Sources, 2)
	vega := cat.Sources[0]
	assert.Equal(t, "Vega", vega.Name)
	assert.InDelta(t, 18.6167, vega.RightAscension, 1e-9)
	assert.InDelta(t, 38.78, vega.Declination, 1e-9)
	assert.Equal(t, 0, vega.TypeIndex)
	assert.True(t, vega.Visible)

	sirius := cat.Sources[1]
	assert.InDelta(t, -16.716111, sirius.Declination, 1e-6)
	assert.Equal(t, 1, sirius.TypeIndex)
	assert.False(t, sirius.Visible)
}

func TestParseCatalogCRLFAndTrailingBlank(t *testing.T) {
	text := strings.ReplaceAll(sampleCatalog, "\n", "\r\n") + "\r\n\r\n"
	cat, err := ParseCatalog(strings.NewReader(text), "sources.csv")
	require.NoError(t, err)
	assert.Len(t, cat.Sources, 2)
}

func TestParseCatalogEmptySources(t *testing.T) {
	text := TypeHeader + "\n8|#FFFFFF\n\n" + SourceHeader + "\n"
	cat, err := ParseCatalog(strings.NewReader(text), "sources.csv")
	require.NoError(t, err)
	assert.Len(t, cat.Types, 1)
	assert.Empty(t, cat.Sources)
}

func TestParseCatalogErrors(t *testing.T) {
	types := TypeHeader + "\n8|#FFD700\n6|#00BFFF\n"
	block := func(rows ...string) string {
		return types + "\n" + SourceHeader + "\n" + strings.Join(rows, "\n") + "\n"
	}

	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{"empty", "", "missing type header"},
		{"no separator", types, "missing blank line"},
		{"no source header", types + "\n", "missing source header"},
		{"double blank", types + "\n\n" + SourceHeader + "\n", "second blank line"},
		{"type columns", TypeHeader + "\n8\n\n" + SourceHeader + "\n", "expected 2 columns"},
		{"type diameter", TypeHeader + "\nbig|#FFF\n\n" + SourceHeader + "\n", "marker_diameter"},
		{"type color", TypeHeader + "\n8|\n\n" + SourceHeader + "\n", "FillColor"},
		{"source columns", block("Vega|18:37:00|+38:46:48|0"), "expected 5 columns"},
		{"bad ra", block("Vega|18h37m|+38:46:48|0|1"), "right_ascension"},
		{"ra out of range", block("Vega|24:00:00|+38:46:48|0|1"), "RightAscension"},
		{"bad dec", block("Vega|18:37:00|+38:61:48|0|1"), "declination"},
		{"dec out of range", block("Vega|18:37:00|+91:00:00|0|1"), "Declination"},
		{"type index", block("Vega|18:37:00|+38:46:48|2|1"), "type_index"},
		{"negative type", block("Vega|18:37:00|+38:46:48|-1|1"), "TypeIndex"},
		{"visible flag", block("Vega|18:37:00|+38:46:48|0|yes"), "visible"},
		{"empty name", block("|18:37:00|+38:46:48|0|1"), "Name"},
		{"third block", block("Vega|18:37:00|+38:46:48|0|1", "", "extra|row"), "after source block"},
		{"sources without types", TypeHeader + "\n\n" + SourceHeader + "\nVega|18:37:00|+38:46:48|0|1\n", "type_index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.text), "sources.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseCatalogTypeIndexOutOfRange(t *testing.T) {
	text := TypeHeader + "\n8|#FFD700\n\n" + SourceHeader + "\nVega|18:37:00|+38:46:48|1|1\n"
	_, err := ParseCatalog(strings.NewReader(text), "sources.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTypeOutOfRange))

	var ferr *domain.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 5, ferr.Line)
	assert.Equal(t, "type_index", ferr.Field)
}

func TestWriteCatalog(t *testing.T) {
	types := []domain.SourceType{{MarkerDiameter: 8, FillColor: "#FFD700"}}
	sources := []domain.Source{
		{Name: "Vega", RightAscension: 18.6167, Declination: 38.78, TypeIndex: 0, Visible: true},
		{Name: "Fomalhaut", RightAscension: 22.9608, Declination: -29.6222, TypeIndex: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, types, sources))

	want := "Source Size|Source Color\n" +
		"8|#FFD700\n" +
		"\n" +
		"Source|Right Ascension|Declination|Type|Trace\n" +
		"Vega|18:37:00.120|+38:46:48.000|0|1\n" +
		"Fomalhaut|22:57:38.880|-29:37:19.920|0|0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCatalogRejectsDelimiter(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCatalog(&buf, []domain.SourceType{{MarkerDiameter: 8, FillColor: "#FFF"}},
		[]domain.Source{{Name: "A|B", RightAscension: 1, Declination: 1}})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	types := []domain.SourceType{
		{MarkerDiameter: 8, FillColor: "#FFD700"},
		{MarkerDiameter: 12, FillColor: "red"},
	}
	sources := []domain.Source{
		{Name: "A", RightAscension: 0, Declination: 0, TypeIndex: 0, Visible: true},
		{Name: "B", RightAscension: 23.99999, Declination: -89.99999, TypeIndex: 1},
		{Name: "C", RightAscension: 12.3456789, Declination: -0.0123456, TypeIndex: 1, Visible: true},
		{Name: "D", RightAscension: 5.000001, Declination: 89.9, TypeIndex: 0},
		{Name: "Sgr A*", RightAscension: 17.761122, Declination: -29.007825, TypeIndex: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, types, sources))

	cat, err := ParseCatalog(&buf, "roundtrip")
	require.NoError(t, err)
	assert.Equal(t, types, cat.Types)
	require.Len(t, cat.Sources, len(sources))

	for i, want := range sources {
		got := cat.Sources[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.TypeIndex, got.TypeIndex)
		assert.Equal(t, want.Visible, got.Visible)
		assert.InDelta(t, want.RightAscension, got.RightAscension, 0.00051/3600, want.Name)
		assert.InDelta(t, want.Declination, got.Declination, 0.00051/3600, want.Name)
	}
}

func TestDefaultTemplatesParse(t *testing.T) {
	data, err := Template(ConfigTemplate)
	require.NoError(t, err)
	cfg, err := ParseConfig(bytes.NewReader(data), ConfigTemplate)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, cfg.Latitude, 1e-12)

	data, err = Template(CatalogTemplate)
	require.NoError(t, err)
	cat, err := ParseCatalog(bytes.NewReader(data), CatalogTemplate)
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Types)
	assert.NotEmpty(t, cat.Sources)
}

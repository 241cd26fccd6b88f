// Package catalog reads and writes the pipe-delimited observer config and
// source catalog files.
//
// Config file: one header line, one data line with seven columns.
// Catalog file: a type block and a source block, each with a header line,
// separated by exactly one blank line.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/sexagesimal"
)

// Delimiter separates columns in both files
const Delimiter = "|"

// Header rows written by WriteCatalog
const (
	TypeHeader   = "Source Size|Source Color"
	SourceHeader = "Source|Right Ascension|Declination|Type|Trace"
)

const (
	configColumns = 7
	typeColumns   = 2
	sourceColumns = 5
)

var validate = validator.New()

// ParseConfig reads an observer config. name labels errors.
func ParseConfig(r io.Reader, name string) (domain.ObserverConfig, error) {
	var cfg domain.ObserverConfig

	lines, err := readLines(r, name)
	if err != nil {
		return cfg, err
	}
	if len(lines) < 1 {
		return cfg, &domain.FormatError{File: name, Reason: "missing header row"}
	}
	if len(lines) < 2 || strings.TrimSpace(lines[1]) == "" {
		return cfg, &domain.FormatError{File: name, Line: 2, Reason: "missing data row"}
	}

	row := newRow(name, 2, lines[1])
	if err := row.expect(configColumns); err != nil {
		return cfg, err
	}

	cfg.Latitude = row.real(0, "latitude")
	cfg.Longitude = row.real(1, "longitude")
	cfg.ElevationMin = row.real(2, "elevation_min")
	cfg.ElevationMax = row.real(3, "elevation_max")
	cfg.WindowWidth = row.integer(4, "window_width")
	cfg.WindowHeight = row.integer(5, "window_height")
	cfg.DegreeScaling = row.real(6, "degree_scaling")
	if row.err != nil {
		return domain.ObserverConfig{}, row.err
	}

	if err := validate.Struct(cfg); err != nil {
		return domain.ObserverConfig{}, validationError(name, 2, err)
	}
	return cfg, nil
}

// ParseCatalog reads the type and source blocks. name labels errors.
func ParseCatalog(r io.Reader, name string) (domain.Catalog, error) {
	var cat domain.Catalog

	lines, err := readLines(r, name)
	if err != nil {
		return cat, err
	}
	if len(lines) == 0 {
		return cat, &domain.FormatError{File: name, Reason: "missing type header row"}
	}

	const (
		inTypes = iota
		atSourceHeader
		inSources
		trailing
	)
	state := inTypes

	for i := 1; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]
		blank := strings.TrimSpace(line) == ""

		switch state {
		case inTypes:
			if blank {
				state = atSourceHeader
				continue
			}
			t, err := parseType(name, lineNo, line)
			if err != nil {
				return domain.Catalog{}, err
			}
			cat.Types = append(cat.Types, t)

		case atSourceHeader:
			if blank {
				return domain.Catalog{}, &domain.FormatError{File: name, Line: lineNo, Reason: "expected source header row, got a second blank line"}
			}
			state = inSources

		case inSources:
			if blank {
				state = trailing
				continue
			}
			s, err := parseSource(name, lineNo, line, len(cat.Types))
			if err != nil {
				return domain.Catalog{}, err
			}
			cat.Sources = append(cat.Sources, s)

		case trailing:
			if !blank {
				return domain.Catalog{}, &domain.FormatError{File: name, Line: lineNo, Reason: "unexpected row after source block"}
			}
		}
	}

	switch state {
	case inTypes:
		return domain.Catalog{}, &domain.FormatError{File: name, Reason: "missing blank line between type and source blocks"}
	case atSourceHeader:
		return domain.Catalog{}, &domain.FormatError{File: name, Reason: "missing source header row"}
	}
	if len(cat.Types) == 0 && len(cat.Sources) > 0 {
		return domain.Catalog{}, &domain.FormatError{File: name, Reason: "sources present but no types defined"}
	}
	return cat, nil
}

func parseType(name string, lineNo int, line string) (domain.SourceType, error) {
	row := newRow(name, lineNo, line)
	if err := row.expect(typeColumns); err != nil {
		return domain.SourceType{}, err
	}

	t := domain.SourceType{
		MarkerDiameter: row.integer(0, "marker_diameter"),
		FillColor:      row.text(1),
	}
	if row.err != nil {
		return domain.SourceType{}, row.err
	}
	if err := validate.Struct(t); err != nil {
		return domain.SourceType{}, validationError(name, lineNo, err)
	}
	return t, nil
}

func parseSource(name string, lineNo int, line string, typeCount int) (domain.Source, error) {
	row := newRow(name, lineNo, line)
	if err := row.expect(sourceColumns); err != nil {
		return domain.Source{}, err
	}

	s := domain.Source{
		Name:           row.text(0),
		RightAscension: row.hours(1, "right_ascension"),
		Declination:    row.degrees(2, "declination"),
		TypeIndex:      row.integer(3, "type_index"),
		Visible:        row.flag(4, "visible"),
	}
	if row.err != nil {
		return domain.Source{}, row.err
	}
	if err := validate.Struct(s); err != nil {
		return domain.Source{}, validationError(name, lineNo, err)
	}
	if s.TypeIndex >= typeCount {
		return domain.Source{}, &domain.FormatError{
			File:   name,
			Line:   lineNo,
			Field:  "type_index",
			Reason: fmt.Sprintf("%d not in [0, %d]", s.TypeIndex, typeCount-1),
			Err:    domain.ErrTypeOutOfRange,
		}
	}
	return s, nil
}

// WriteCatalog writes both blocks with their header rows.
// Coordinates are written sexagesimal with three decimals on seconds.
func WriteCatalog(w io.Writer, types []domain.SourceType, sources []domain.Source) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, TypeHeader)
	for i, t := range types {
		if err := checkText(t.FillColor); err != nil {
			return fmt.Errorf("type %d color: %w", i, err)
		}
		fmt.Fprintf(bw, "%d%s%s\n", t.MarkerDiameter, Delimiter, t.FillColor)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, SourceHeader)
	for i, s := range sources {
		if err := checkText(s.Name); err != nil {
			return fmt.Errorf("source %d name: %w", i, err)
		}
		visible := "0"
		if s.Visible {
			visible = "1"
		}
		fmt.Fprintln(bw, strings.Join([]string{
			s.Name,
			sexagesimal.FormatHours(s.RightAscension),
			sexagesimal.FormatDegrees(s.Declination),
			strconv.Itoa(s.TypeIndex),
			visible,
		}, Delimiter))
	}

	return bw.Flush()
}

// errUnwritable marks text that would corrupt the line format
var errUnwritable = errors.New("contains a delimiter or line break")

func checkText(s string) error {
	if strings.ContainsAny(s, Delimiter+"\r\n") {
		return fmt.Errorf("%q %w", s, errUnwritable)
	}
	return nil
}

func readLines(r io.Reader, name string) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], "\ufeff")
	}
	return lines, nil
}

// row parses the columns of one line, keeping the first error
type row struct {
	file   string
	line   int
	fields []string
	err    error
}

func newRow(file string, line int, text string) *row {
	fields := strings.Split(text, Delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return &row{file: file, line: line, fields: fields}
}

func (r *row) expect(n int) error {
	if len(r.fields) != n {
		return &domain.FormatError{
			File:   r.file,
			Line:   r.line,
			Reason: fmt.Sprintf("expected %d columns, got %d", n, len(r.fields)),
		}
	}
	return nil
}

func (r *row) fail(field string, err error) {
	if r.err == nil {
		r.err = &domain.FormatError{File: r.file, Line: r.line, Field: field, Reason: "invalid value", Err: err}
	}
}

func (r *row) text(i int) string {
	return r.fields[i]
}

func (r *row) real(i int, field string) float64 {
	v, err := strconv.ParseFloat(r.fields[i], 64)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) integer(i int, field string) int {
	v, err := strconv.Atoi(r.fields[i])
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) flag(i int, field string) bool {
	switch r.fields[i] {
	case "1":
		return true
	case "0":
		return false
	}
	r.fail(field, fmt.Errorf("%q is not 0 or 1", r.fields[i]))
	return false
}

func (r *row) hours(i int, field string) float64 {
	v, err := sexagesimal.ParseHours(r.fields[i])
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) degrees(i int, field string) float64 {
	v, err := sexagesimal.ParseDegrees(r.fields[i])
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// validationError turns the first validator failure into a FormatError
func validationError(file string, line int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.FormatError{
			File:   file,
			Line:   line,
			Field:  fe.Field(),
			Reason: fmt.Sprintf("failed %s=%s check (value %v)", fe.Tag(), fe.Param(), fe.Value()),
		}
	}
	return &domain.FormatError{File: file, Line: line, Reason: "invalid row", Err: err}
}

// Package sexagesimal converts decimal hours and degrees to and from
// colon-separated sexagesimal text (HH:MM:SS.sss and ±DD:MM:SS.sss).
//
// Formatting rounds half away from zero at the requested number of decimal
// places on the seconds component, then carries into minutes and the whole
// part, so a seconds field of 60 is never produced.
package sexagesimal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDecimals is the number of decimal places written on seconds
const DefaultDecimals = 3

var (
	// ErrFieldCount indicates the text did not have exactly three colon-separated fields
	ErrFieldCount = errors.New("expected three colon-separated fields")

	// ErrOutOfRange indicates a minutes or seconds field outside [0, 60)
	ErrOutOfRange = errors.New("field out of range")
)

// Parts is a sexagesimal value split into its components
type Parts struct {
	Negative bool
	Whole    int     // Hours or degrees
	Minutes  int     // 0..59
	Seconds  float64 // 0 <= s < 60, rounded to the requested precision
}

// Split breaks a decimal value into sign, whole, minutes and seconds.
// Seconds are rounded half away from zero at the given number of decimals.
func Split(value float64, decimals int) Parts {
	if decimals < 0 {
		decimals = 0
	}
	scale := math.Pow(10, float64(decimals))

	p := Parts{Negative: value < 0}
	units := int64(math.Round(math.Abs(value) * 3600 * scale))

	perMinute := int64(60 * scale)
	perWhole := 60 * perMinute

	p.Whole = int(units / perWhole)
	units %= perWhole
	p.Minutes = int(units / perMinute)
	units %= perMinute
	p.Seconds = float64(units) / scale

	// -0.0001 rounds to zero and carries no sign
	if p.Whole == 0 && p.Minutes == 0 && units == 0 {
		p.Negative = false
	}
	return p
}

// Value joins the components back into a decimal value
func (p Parts) Value() float64 {
	v := float64(p.Whole) + float64(p.Minutes)/60 + p.Seconds/3600
	if p.Negative {
		return -v
	}
	return v
}

// format renders the parts with a two-digit whole and minutes field
func (p Parts) format(decimals int, signed bool) string {
	width := 2
	if decimals > 0 {
		width = 3 + decimals
	}
	secs := strconv.FormatFloat(p.Seconds, 'f', decimals, 64)
	if pad := width - len(secs); pad > 0 {
		secs = strings.Repeat("0", pad) + secs
	}

	body := fmt.Sprintf("%02d:%02d:%s", p.Whole, p.Minutes, secs)
	if !signed {
		return body
	}
	if p.Negative {
		return "-" + body
	}
	return "+" + body
}

// FormatHours renders decimal hours as HH:MM:SS.sss, wrapping into [0, 24)
func FormatHours(hours float64) string {
	return FormatHoursPrec(hours, DefaultDecimals)
}

// FormatHoursPrec is FormatHours with an explicit seconds precision
func FormatHoursPrec(hours float64, decimals int) string {
	hours = math.Mod(hours, 24)
	if hours < 0 {
		hours += 24
	}
	p := Split(hours, decimals)
	if p.Whole >= 24 {
		p.Whole -= 24
	}
	return p.format(decimals, false)
}

// FormatDegrees renders decimal degrees as ±DD:MM:SS.sss
func FormatDegrees(degrees float64) string {
	return FormatDegreesPrec(degrees, DefaultDecimals)
}

// FormatDegreesPrec is FormatDegrees with an explicit seconds precision
func FormatDegreesPrec(degrees float64, decimals int) string {
	return Split(degrees, decimals).format(decimals, true)
}

// ParseHours parses HH:MM:SS[.sss] into decimal hours. Hours carry no sign.
func ParseHours(text string) (float64, error) {
	fields, err := fields(text)
	if err != nil {
		return 0, err
	}
	if strings.HasPrefix(fields[0], "-") || strings.HasPrefix(fields[0], "+") {
		return 0, fmt.Errorf("%w: hours are unsigned: %q", ErrOutOfRange, text)
	}
	p, err := parseParts(fields)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", text, err)
	}
	return p.Value(), nil
}

// ParseDegrees parses ±DD:MM:SS[.sss] into decimal degrees.
// The sign is taken from the leading character of the degrees field and
// applies to the whole value, so "-00:30:00" is negative.
func ParseDegrees(text string) (float64, error) {
	fields, err := fields(text)
	if err != nil {
		return 0, err
	}

	negative := false
	switch {
	case strings.HasPrefix(fields[0], "-"):
		negative = true
		fields[0] = fields[0][1:]
	case strings.HasPrefix(fields[0], "+"):
		fields[0] = fields[0][1:]
	}

	p, err := parseParts(fields)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", text, err)
	}
	p.Negative = negative
	return p.Value(), nil
}

func fields(text string) ([]string, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrFieldCount, text)
	}
	return parts, nil
}

func parseParts(fields []string) (Parts, error) {
	var p Parts

	whole, err := strconv.Atoi(fields[0])
	if err != nil || whole < 0 {
		return p, fmt.Errorf("whole field %q: %w", fields[0], errOr(err))
	}
	minutes, err := strconv.Atoi(fields[1])
	if err != nil || minutes < 0 || minutes >= 60 {
		return p, fmt.Errorf("minutes field %q: %w", fields[1], errOr(err))
	}
	seconds, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || seconds < 0 || seconds >= 60 || math.IsNaN(seconds) {
		return p, fmt.Errorf("seconds field %q: %w", fields[2], errOr(err))
	}

	p.Whole = whole
	p.Minutes = minutes
	p.Seconds = seconds
	return p, nil
}

func errOr(err error) error {
	if err != nil {
		return err
	}
	return ErrOutOfRange
}

package docx

import (
	"fmt"
	"strconv"
	"strings"
)

// Length is a distance in English Metric Units (EMU), the native unit of DrawingML.
// A zero Length is treated as "not supplied" by the image sizing helpers.
type Length int64

const (
	emusPerInch = 914400
	emusPerCm   = 360000
	emusPerMm   = 36000
	emusPerPt   = 12700
	emusPerTwip = 635
)

// Inches creates a Length from a number of inches
func Inches(v float64) Length { return Length(v * emusPerInch) }

// Cm creates a Length from a number of centimeters
func Cm(v float64) Length { return Length(v * emusPerCm) }

// Mm creates a Length from a number of millimeters
func Mm(v float64) Length { return Length(v * emusPerMm) }

// Pt creates a Length from a number of points
func Pt(v float64) Length { return Length(v * emusPerPt) }

// Twips creates a Length from a number of twentieths of a point
func Twips(v int64) Length { return Length(v * emusPerTwip) }

// Emu creates a Length from a raw EMU value
func Emu(v int64) Length { return Length(v) }

// Inches returns the length in inches
func (l Length) Inches() float64 { return float64(l) / emusPerInch }

// Cm returns the length in centimeters
func (l Length) Cm() float64 { return float64(l) / emusPerCm }

// Mm returns the length in millimeters
func (l Length) Mm() float64 { return float64(l) / emusPerMm }

// Pt returns the length in points
func (l Length) Pt() float64 { return float64(l) / emusPerPt }

// Twips returns the length in twips, truncated
func (l Length) Twips() int64 { return int64(l) / emusPerTwip }

// Emu returns the raw EMU value
func (l Length) Emu() int64 { return int64(l) }

func (l Length) String() string {
	return fmt.Sprintf("%demu", int64(l))
}

// ParseLength parses a length with a unit suffix: "2in", "5cm", "12mm", "72pt",
// "1440twip" or "914400emu". A bare number is read as EMU.
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}

	units := []struct {
		suffix string
		conv   func(float64) Length
	}{
		{"twip", func(v float64) Length { return Length(v * emusPerTwip) }},
		{"emu", func(v float64) Length { return Length(v) }},
		{"in", Inches},
		{"cm", Cm},
		{"mm", Mm},
		{"pt", Pt},
	}

	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		num := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid length %q: %w", s, err)
		}
		if v < 0 {
			return 0, fmt.Errorf("negative length %q", s)
		}
		return u.conv(v), nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: unknown unit", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative length %q", s)
	}
	return Length(v), nil
}

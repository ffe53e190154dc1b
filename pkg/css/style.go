package css

import (
	"strconv"
	"strings"
)

// Style is the computed style of a node: a property name to resolved
// value mapping. It is filled once by the cascade and treated as
// read-only from layout onward.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Clone returns an independent copy of the style.
func (s *Style) Clone() *Style {
	out := NewStyle()
	for k, v := range s.Properties {
		out.Properties[k] = v
	}
	return out
}

// ParseLength parses a pixel length ("12px" or "12"). Unsupported units
// and garbage report ok=false, which callers treat as auto/initial.
func ParseLength(value string) (float64, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	v = strings.TrimSuffix(v, "px")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetLength resolves a property as a pixel length.
func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// lengthOrZero resolves a property as a non-negative pixel length,
// clamping negatives to zero per the box-model invariant.
func (s *Style) lengthOrZero(property string) float64 {
	v, ok := s.GetLength(property)
	if !ok || v < 0 {
		return 0
	}
	return v
}

// Edges holds per-side widths of one box-model ring.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal is the left + right sum.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical is the top + bottom sum.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Margin returns the resolved margin widths, never negative.
func (s *Style) Margin() Edges {
	return s.edges("margin-")
}

// Padding returns the resolved padding widths, never negative.
func (s *Style) Padding() Edges {
	return s.edges("padding-")
}

// BorderWidth returns the resolved border widths, never negative. A
// border-style of none zeroes all four.
func (s *Style) BorderWidth() Edges {
	if bs, ok := s.Get("border-style"); ok && strings.TrimSpace(bs) == "none" {
		return Edges{}
	}
	return Edges{
		Top:    s.lengthOrZero("border-top-width"),
		Right:  s.lengthOrZero("border-right-width"),
		Bottom: s.lengthOrZero("border-bottom-width"),
		Left:   s.lengthOrZero("border-left-width"),
	}
}

func (s *Style) edges(prefix string) Edges {
	return Edges{
		Top:    s.lengthOrZero(prefix + "top"),
		Right:  s.lengthOrZero(prefix + "right"),
		Bottom: s.lengthOrZero(prefix + "bottom"),
		Left:   s.lengthOrZero(prefix + "left"),
	}
}

// DisplayType is the supported subset of the display property.
type DisplayType string

const (
	DisplayBlock  DisplayType = "block"
	DisplayInline DisplayType = "inline"
	DisplayNone   DisplayType = "none"
)

// Display returns the computed display type. Unknown values fall back to
// block, the initial value in this engine.
func (s *Style) Display() DisplayType {
	switch v, _ := s.Get("display"); strings.TrimSpace(v) {
	case "inline", "inline-block":
		return DisplayInline
	case "none":
		return DisplayNone
	}
	return DisplayBlock
}

const defaultFontSize = 16.0

// FontSize returns the computed font size in pixels.
func (s *Style) FontSize() float64 {
	if v, ok := s.GetLength("font-size"); ok && v > 0 {
		return v
	}
	return defaultFontSize
}

// LineHeight returns the line box height contribution of text at this
// style: the line-height property if set, else 1.2x the font size.
func (s *Style) LineHeight() float64 {
	if v, ok := s.GetLength("line-height"); ok && v > 0 {
		return v
	}
	return s.FontSize() * 1.2
}

// Color returns the text color, defaulting to black.
func (s *Style) Color() Color {
	if v, ok := s.Get("color"); ok {
		if c, ok := ParseColor(v); ok {
			return c
		}
	}
	return Color{0, 0, 0, 255}
}

// BackgroundColor returns the background color and whether one is set to
// something paintable.
func (s *Style) BackgroundColor() (Color, bool) {
	v, ok := s.Get("background-color")
	if !ok {
		v, ok = s.Get("background")
	}
	if !ok {
		return Color{}, false
	}
	return ParseColor(v)
}

// BorderColor returns the border color, falling back to the text color
// (currentColor semantics).
func (s *Style) BorderColor() Color {
	if v, ok := s.Get("border-color"); ok {
		if c, ok := ParseColor(v); ok {
			return c
		}
	}
	return s.Color()
}

// Bold reports whether the computed font weight is bold.
func (s *Style) Bold() bool {
	switch v, _ := s.Get("font-weight"); strings.TrimSpace(v) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

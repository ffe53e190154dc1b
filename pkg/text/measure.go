package text

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle selects a face variant. The embedded Go font family backs all
// of them, so measurement is deterministic across machines.
type FontStyle struct {
	Size   float64
	Bold   bool
	Italic bool
	Mono   bool
}

var (
	parseOnce  sync.Once
	parsedErr  error
	regular    *truetype.Font
	bold       *truetype.Font
	italic     *truetype.Font
	boldItalic *truetype.Font
	mono       *truetype.Font
	monoBold   *truetype.Font
)

func parseFonts() {
	parse := func(ttf []byte, dst **truetype.Font) {
		if parsedErr != nil {
			return
		}
		f, err := truetype.Parse(ttf)
		if err != nil {
			parsedErr = fmt.Errorf("parsing embedded font: %w", err)
			return
		}
		*dst = f
	}
	parse(goregular.TTF, &regular)
	parse(gobold.TTF, &bold)
	parse(goitalic.TTF, &italic)
	parse(gobolditalic.TTF, &boldItalic)
	parse(gomono.TTF, &mono)
	parse(gomonobold.TTF, &monoBold)
}

func fontFor(style FontStyle) *truetype.Font {
	switch {
	case style.Mono && style.Bold:
		return monoBold
	case style.Mono:
		return mono
	case style.Bold && style.Italic:
		return boldItalic
	case style.Bold:
		return bold
	case style.Italic:
		return italic
	default:
		return regular
	}
}

// Measurer builds and caches font faces, and measures strings with them.
// It is safe for use from a single render pass; create one per pipeline.
type Measurer struct {
	faces map[FontStyle]font.Face
}

func NewMeasurer() *Measurer {
	return &Measurer{faces: make(map[FontStyle]font.Face)}
}

// Face returns a cached face for the style. Returns an error only if the
// embedded fonts fail to parse, which indicates a broken build.
func (m *Measurer) Face(style FontStyle) (font.Face, error) {
	if f, ok := m.faces[style]; ok {
		return f, nil
	}
	parseOnce.Do(parseFonts)
	if parsedErr != nil {
		return nil, parsedErr
	}
	if style.Size <= 0 {
		style.Size = 16
	}
	face := truetype.NewFace(fontFor(style), &truetype.Options{
		Size: style.Size,
		DPI:  72,
	})
	m.faces[style] = face
	return face, nil
}

// Width returns the advance width of s in pixels. Falls back to a rough
// per-character estimate if the face is unavailable.
func (m *Measurer) Width(s string, style FontStyle) float64 {
	face, err := m.Face(style)
	if err != nil {
		return float64(len(s)) * style.Size * 0.6
	}
	return float64(font.MeasureString(face, s)) / 64
}

// Ascent returns the baseline offset from the top of the line box, in
// pixels, for text drawn at the style.
func (m *Measurer) Ascent(style FontStyle) float64 {
	face, err := m.Face(style)
	if err != nil {
		return style.Size * 0.8
	}
	return float64(face.Metrics().Ascent) / 64
}

// StyleFromProperties maps computed font properties to a face selection.
func StyleFromProperties(size float64, weight, fontStyle, family string) FontStyle {
	fs := FontStyle{Size: size}
	switch strings.TrimSpace(weight) {
	case "bold", "bolder", "600", "700", "800", "900":
		fs.Bold = true
	}
	if strings.TrimSpace(fontStyle) == "italic" {
		fs.Italic = true
	}
	if strings.Contains(family, "monospace") {
		fs.Mono = true
	}
	return fs
}

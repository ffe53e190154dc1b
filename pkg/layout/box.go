package layout

import "github.com/copaaglo/mybrowser/pkg/css"

// BoxType discriminates the layout tree variants.
type BoxType int

const (
	// BlockBox is a block-level element box; children stack vertically.
	BlockBox BoxType = iota
	// InlineBox is an atomic inline-level box, currently images.
	InlineBox
	// AnonymousBlock wraps a run of inline content inside a block so that
	// block layout only ever stacks blocks. It has no DOM node.
	AnonymousBlock
	// TextRun is a measured run of text sharing one style on one line.
	TextRun
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	case TextRun:
		return "text"
	}
	return "unknown"
}

// Rect is an axis-aligned rectangle in absolute page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Box is one node of the layout tree. X and Y locate the border box
// top-left in absolute page coordinates; Width and Height are the content
// box dimensions. All geometry is final once layout returns.
type Box struct {
	Type   BoxType
	Styled *css.StyledNode // nil for anonymous blocks

	X, Y          float64
	Width, Height float64

	Margin  css.Edges
	Border  css.Edges
	Padding css.Edges

	Parent   *Box
	Children []*Box

	// TextRun fields.
	Text     string
	Bold     bool
	Italic   bool
	Mono     bool
	FontSize float64
	Baseline float64 // absolute y of the text baseline

	// InlineBox (image) fields.
	ImageSrc string
}

// ContentX is the absolute x of the content box.
func (b *Box) ContentX() float64 { return b.X + b.Border.Left + b.Padding.Left }

// ContentY is the absolute y of the content box.
func (b *Box) ContentY() float64 { return b.Y + b.Border.Top + b.Padding.Top }

// BorderRect is the border box: content plus padding plus border.
func (b *Box) BorderRect() Rect {
	return Rect{
		X: b.X,
		Y: b.Y,
		W: b.Width + b.Padding.Horizontal() + b.Border.Horizontal(),
		H: b.Height + b.Padding.Vertical() + b.Border.Vertical(),
	}
}

// ContentRect is the content box.
func (b *Box) ContentRect() Rect {
	return Rect{X: b.ContentX(), Y: b.ContentY(), W: b.Width, H: b.Height}
}

// MarginHeight is the full vertical extent the box occupies in normal
// flow: margin plus border plus padding plus content height.
func (b *Box) MarginHeight() float64 {
	return b.Margin.Vertical() + b.BorderRect().H
}

// addChild appends and sets the parent pointer.
func (b *Box) addChild(child *Box) {
	child.Parent = b
	b.Children = append(b.Children, child)
}

// Style returns the computed style backing this box. Anonymous blocks
// have none and return nil.
func (b *Box) Style() *css.Style {
	if b.Styled == nil {
		return nil
	}
	return b.Styled.Style
}

// Package paint flattens a layout tree into an ordered display list.
// The list is the only input the rasterizer needs: replaying it in
// order reproduces the page.
package paint

import (
	"github.com/copaaglo/mybrowser/pkg/css"
	"github.com/copaaglo/mybrowser/pkg/layout"
)

// DisplayItem is one drawing command with absolute geometry. The set of
// implementations is closed; consumers switch on the concrete type.
type DisplayItem interface {
	displayItem()
}

// FillRect fills a rectangle with a solid color. Used for backgrounds
// and border edges.
type FillRect struct {
	Rect  layout.Rect
	Color css.Color
}

// DrawText draws one run of text. X, Y locate the baseline start.
type DrawText struct {
	X, Y      float64
	Text      string
	Size      float64
	Bold      bool
	Italic    bool
	Mono      bool
	Color     css.Color
	Underline bool
	Href      string // non-empty when the run is inside a link
}

// DrawImage draws an image scaled into Rect. A nil resolver result
// means the rasterizer paints a broken-image placeholder instead.
type DrawImage struct {
	Rect layout.Rect
	Src  string
	Href string
}

func (FillRect) displayItem()  {}
func (DrawText) displayItem()  {}
func (DrawImage) displayItem() {}

// Paint walks the layout tree in pre-order and emits the display list:
// each box paints its background, then its border edges, then its own
// content, then its children. A nil root paints nothing.
func Paint(root *layout.Box) []DisplayItem {
	var list []DisplayItem
	paintBox(&list, root)
	return list
}

func paintBox(list *[]DisplayItem, box *layout.Box) {
	if box == nil {
		return
	}
	switch box.Type {
	case layout.TextRun:
		paintText(list, box)
	case layout.InlineBox:
		paintImage(list, box)
	default:
		paintBackground(list, box)
		paintBorders(list, box)
	}
	for _, child := range box.Children {
		paintBox(list, child)
	}
}

func paintBackground(list *[]DisplayItem, box *layout.Box) {
	style := box.Style()
	if style == nil {
		return
	}
	color, ok := style.BackgroundColor()
	if !ok {
		return
	}
	// Backgrounds cover the padding box: everything inside the border.
	r := box.BorderRect()
	r.X += box.Border.Left
	r.Y += box.Border.Top
	r.W -= box.Border.Horizontal()
	r.H -= box.Border.Vertical()
	if r.W <= 0 || r.H <= 0 {
		return
	}
	*list = append(*list, FillRect{Rect: r, Color: color})
}

// paintBorders emits one rectangle per non-zero border edge.
func paintBorders(list *[]DisplayItem, box *layout.Box) {
	style := box.Style()
	if style == nil {
		return
	}
	b := box.Border
	if b == (css.Edges{}) {
		return
	}
	color := style.BorderColor()
	r := box.BorderRect()

	if b.Top > 0 {
		*list = append(*list, FillRect{
			Rect: layout.Rect{X: r.X, Y: r.Y, W: r.W, H: b.Top}, Color: color})
	}
	if b.Bottom > 0 {
		*list = append(*list, FillRect{
			Rect: layout.Rect{X: r.X, Y: r.Y + r.H - b.Bottom, W: r.W, H: b.Bottom}, Color: color})
	}
	if b.Left > 0 {
		*list = append(*list, FillRect{
			Rect: layout.Rect{X: r.X, Y: r.Y, W: b.Left, H: r.H}, Color: color})
	}
	if b.Right > 0 {
		*list = append(*list, FillRect{
			Rect: layout.Rect{X: r.X + r.W - b.Right, Y: r.Y, W: b.Right, H: r.H}, Color: color})
	}
}

func paintText(list *[]DisplayItem, box *layout.Box) {
	if box.Text == "" {
		return
	}
	style := box.Style()
	href, _ := layout.LinkTarget(box)
	underline := false
	if v, ok := style.Get("text-decoration"); ok && v == "underline" {
		underline = true
	}
	*list = append(*list, DrawText{
		X:         box.X,
		Y:         box.Baseline,
		Text:      box.Text,
		Size:      box.FontSize,
		Bold:      box.Bold,
		Italic:    box.Italic,
		Mono:      box.Mono,
		Color:     style.Color(),
		Underline: underline,
		Href:      href,
	})
}

func paintImage(list *[]DisplayItem, box *layout.Box) {
	href, _ := layout.LinkTarget(box)
	*list = append(*list, DrawImage{
		Rect: layout.Rect{X: box.X, Y: box.Y, W: box.Width, H: box.Height},
		Src:  box.ImageSrc,
		Href: href,
	})
}

package layout

import (
	"strconv"

	"github.com/copaaglo/mybrowser/pkg/css"
	"github.com/copaaglo/mybrowser/pkg/html"
	"github.com/copaaglo/mybrowser/pkg/text"
)

// ImageSizer reports the intrinsic pixel dimensions of an image by
// source URL. ok=false means the image is unavailable; layout then uses
// the broken-image placeholder size.
type ImageSizer func(src string) (w, h int, ok bool)

// placeholderSize is the square reserved for images that cannot be
// decoded or fetched.
const placeholderSize = 24.0

// Engine turns a styled tree into a layout tree with absolute geometry.
// Layout never mutates the styled tree.
type Engine struct {
	Measure   *text.Measurer
	ImageSize ImageSizer
}

func NewEngine() *Engine {
	return &Engine{Measure: text.NewMeasurer()}
}

// Layout lays out the styled tree against the viewport width and returns
// the root box. A root styled as display:none yields nil.
func (e *Engine) Layout(root *css.StyledNode, viewportWidth float64) *Box {
	if root == nil || root.Style.Display() == css.DisplayNone {
		return nil
	}
	if e.Measure == nil {
		e.Measure = text.NewMeasurer()
	}
	box := e.layoutBlock(root, 0, 0, viewportWidth)
	return box
}

// layoutBlock lays out one block-level element. containingX is the
// absolute x of the containing block's content edge, cursor the absolute
// y where this box's margin box begins, containingWidth the containing
// content width.
func (e *Engine) layoutBlock(styled *css.StyledNode, containingX, cursor, containingWidth float64) *Box {
	style := styled.Style
	box := &Box{
		Type:    BlockBox,
		Styled:  styled,
		Margin:  style.Margin(),
		Border:  style.BorderWidth(),
		Padding: style.Padding(),
	}

	box.X = containingX + box.Margin.Left
	box.Y = cursor + box.Margin.Top

	if w, ok := style.GetLength("width"); ok && w >= 0 {
		box.Width = w
	} else {
		box.Width = containingWidth -
			box.Margin.Horizontal() - box.Border.Horizontal() - box.Padding.Horizontal()
		if box.Width < 0 {
			box.Width = 0
		}
	}

	if styled.Node.Type == html.ElementNode && styled.Node.TagName == "li" {
		e.layoutListItem(box)
	} else {
		e.layoutBlockChildren(box, 0)
	}

	if h, ok := style.GetLength("height"); ok && h >= 0 {
		box.Height = h
	}
	return box
}

// List items render a bullet run before their content; the content is
// shifted right to clear it.
const (
	listBullet    = "•"
	listBulletGap = 10.0
)

// layoutListItem synthesizes the bullet for an <li> and lays the item's
// own children out to the right of it. The bullet inherits the item's
// computed style, so font-size and color follow the list.
func (e *Engine) layoutListItem(box *Box) {
	style := box.Style()
	fs := fontStyleFor(style)
	bulletW := e.Measure.Width(listBullet, fs)

	bullet := &Box{
		Type:     TextRun,
		Styled:   box.Styled,
		X:        box.ContentX(),
		Y:        box.ContentY(),
		Width:    bulletW,
		Height:   style.LineHeight(),
		Text:     listBullet,
		Bold:     fs.Bold,
		Italic:   fs.Italic,
		Mono:     fs.Mono,
		FontSize: fs.Size,
		Baseline: box.ContentY() + e.Measure.Ascent(fs),
	}
	box.addChild(bullet)

	e.layoutBlockChildren(box, bulletW+listBulletGap)
	if box.Height < bullet.Height {
		box.Height = bullet.Height
	}
}

// layoutBlockChildren stacks the element's children inside the content
// box, indented from its left edge by inset. Runs of consecutive inline
// content are wrapped in anonymous blocks so the stacking loop only
// ever sees blocks.
func (e *Engine) layoutBlockChildren(box *Box, inset float64) {
	contentX := box.ContentX() + inset
	width := box.Width - inset
	if width < 0 {
		width = 0
	}
	y := box.ContentY()

	var inlineRun []*css.StyledNode
	flushInline := func() {
		if len(inlineRun) == 0 {
			return
		}
		anon := e.layoutAnonymousBlock(inlineRun, contentX, y, width)
		inlineRun = nil
		if anon == nil {
			return
		}
		box.addChild(anon)
		y += anon.MarginHeight()
	}

	for _, child := range box.Styled.Children {
		switch child.Node.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			inlineRun = append(inlineRun, child)
			continue
		}
		switch child.Style.Display() {
		case css.DisplayNone:
			continue
		case css.DisplayInline:
			inlineRun = append(inlineRun, child)
		default:
			flushInline()
			block := e.layoutBlock(child, contentX, y, width)
			box.addChild(block)
			y += block.MarginHeight()
		}
	}
	flushInline()

	box.Height = y - box.ContentY()
}

// imageDimensions resolves an <img> box size: width/height attributes
// first, then the decoded image's intrinsic size, then the placeholder.
func (e *Engine) imageDimensions(node *html.Node, src string) (float64, float64) {
	attrW := attrLength(node, "width")
	attrH := attrLength(node, "height")
	if attrW > 0 && attrH > 0 {
		return attrW, attrH
	}

	var iw, ih float64
	if e.ImageSize != nil {
		if w, h, ok := e.ImageSize(src); ok && w > 0 && h > 0 {
			iw, ih = float64(w), float64(h)
		}
	}
	if iw == 0 {
		iw, ih = placeholderSize, placeholderSize
	}

	// A single attribute scales the other axis proportionally.
	switch {
	case attrW > 0:
		return attrW, ih * attrW / iw
	case attrH > 0:
		return iw * attrH / ih, attrH
	}
	return iw, ih
}

func attrLength(node *html.Node, name string) float64 {
	v, ok := node.GetAttribute(name)
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

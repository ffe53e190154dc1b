package layout

import (
	"strings"

	"github.com/copaaglo/mybrowser/pkg/css"
	"github.com/copaaglo/mybrowser/pkg/html"
	"github.com/copaaglo/mybrowser/pkg/text"
)

type itemKind int

const (
	itemWord itemKind = iota
	itemSpace
	itemBreak
	itemImage
)

// inlineItem is one atom of inline content before line breaking. Breaks
// happen only between items, never inside a word or image.
type inlineItem struct {
	kind   itemKind
	text   string
	styled *css.StyledNode
	width  float64
	imgW   float64
	imgH   float64
	src    string
}

// placedItem is an item with its x offset within the line.
type placedItem struct {
	inlineItem
	x float64
}

type inlineLine struct {
	items []placedItem
	// fallbackHeight is used when the line has no items, as after
	// consecutive <br> tags.
	fallbackHeight float64
}

// layoutAnonymousBlock lays a run of inline content into line boxes and
// wraps them in an anonymous block at (x, y). Whitespace-only runs
// produce no box and return nil.
func (e *Engine) layoutAnonymousBlock(run []*css.StyledNode, x, y, width float64) *Box {
	var items []inlineItem
	for _, styled := range run {
		items = e.collectInline(items, styled)
	}

	hasContent := false
	for _, it := range items {
		if it.kind == itemWord || it.kind == itemImage || it.kind == itemBreak {
			hasContent = true
			break
		}
	}
	if !hasContent {
		return nil
	}

	lines := breakLines(items, width)

	anon := &Box{Type: AnonymousBlock, X: x, Y: y, Width: width}
	lineTop := y
	for _, line := range lines {
		lineHeight := e.placeLine(anon, line, x, lineTop)
		lineTop += lineHeight
	}
	anon.Height = lineTop - y
	return anon
}

// collectInline flattens a styled subtree into inline items. Inline
// elements contribute their children's items; the style travels with
// each text node's own styled node.
func (e *Engine) collectInline(items []inlineItem, styled *css.StyledNode) []inlineItem {
	node := styled.Node
	switch node.Type {
	case html.CommentNode:
		return items
	case html.TextNode:
		return e.collectText(items, styled)
	}

	if styled.Style.Display() == css.DisplayNone {
		return items
	}
	switch node.TagName {
	case "br":
		return append(items, inlineItem{kind: itemBreak, styled: styled})
	case "img":
		src, _ := node.GetAttribute("src")
		w, h := e.imageDimensions(node, src)
		return append(items, inlineItem{
			kind: itemImage, styled: styled, src: src,
			width: w, imgW: w, imgH: h,
		})
	}
	for _, child := range styled.Children {
		items = e.collectInline(items, child)
	}
	return items
}

// collectText splits already-normalized text into word and space items.
func (e *Engine) collectText(items []inlineItem, styled *css.StyledNode) []inlineItem {
	fs := fontStyleFor(styled.Style)
	raw := styled.Node.Text
	for raw != "" {
		if raw[0] == ' ' {
			items = append(items, inlineItem{
				kind: itemSpace, text: " ", styled: styled,
				width: e.Measure.Width(" ", fs),
			})
			raw = raw[1:]
			continue
		}
		end := strings.IndexByte(raw, ' ')
		if end == -1 {
			end = len(raw)
		}
		word := raw[:end]
		items = append(items, inlineItem{
			kind: itemWord, text: word, styled: styled,
			width: e.Measure.Width(word, fs),
		})
		raw = raw[end:]
	}
	return items
}

// breakLines greedily packs items into lines of at most maxWidth.
// Breaks are taken only at spaces or forced by <br>; a word wider than
// the line still gets a line to itself and overflows.
func breakLines(items []inlineItem, maxWidth float64) []inlineLine {
	var lines []inlineLine
	var cur []placedItem
	curWidth := 0.0

	flush := func(fallback float64) {
		// Trailing spaces do not render and do not count.
		for len(cur) > 0 && cur[len(cur)-1].kind == itemSpace {
			cur = cur[:len(cur)-1]
		}
		lines = append(lines, inlineLine{items: cur, fallbackHeight: fallback})
		cur = nil
		curWidth = 0
	}

	for _, it := range items {
		switch it.kind {
		case itemBreak:
			flush(it.styled.Style.LineHeight())
		case itemSpace:
			if len(cur) == 0 {
				continue // leading spaces vanish
			}
			cur = append(cur, placedItem{inlineItem: it, x: curWidth})
			curWidth += it.width
		default: // word or image
			if len(cur) > 0 && curWidth+it.width > maxWidth {
				flush(0)
			}
			cur = append(cur, placedItem{inlineItem: it, x: curWidth})
			curWidth += it.width
		}
	}
	if len(cur) > 0 {
		flush(0)
	}
	return lines
}

// placeLine converts one line's items into TextRun and InlineBox
// children of the anonymous block and returns the line height.
func (e *Engine) placeLine(anon *Box, line inlineLine, x, lineTop float64) float64 {
	if len(line.items) == 0 {
		if line.fallbackHeight > 0 {
			return line.fallbackHeight
		}
		return 0
	}

	// The line is as tall as its tallest run; the shared baseline sits at
	// the tallest ascent.
	lineHeight := 0.0
	maxAscent := 0.0
	for _, it := range line.items {
		switch it.kind {
		case itemImage:
			if it.imgH > lineHeight {
				lineHeight = it.imgH
			}
			if it.imgH > maxAscent {
				maxAscent = it.imgH
			}
		default:
			lh := it.styled.Style.LineHeight()
			if lh > lineHeight {
				lineHeight = lh
			}
			if a := e.Measure.Ascent(fontStyleFor(it.styled.Style)); a > maxAscent {
				maxAscent = a
			}
		}
	}
	baseline := lineTop + maxAscent

	// Merge consecutive text items that share a styled node into one run.
	i := 0
	for i < len(line.items) {
		it := line.items[i]
		if it.kind == itemImage {
			img := &Box{
				Type:     InlineBox,
				Styled:   it.styled,
				X:        x + it.x,
				Y:        baseline - it.imgH,
				Width:    it.imgW,
				Height:   it.imgH,
				ImageSrc: it.src,
			}
			anon.addChild(img)
			i++
			continue
		}

		j := i
		var sb strings.Builder
		runWidth := 0.0
		for j < len(line.items) && line.items[j].kind != itemImage &&
			line.items[j].styled == it.styled {
			sb.WriteString(line.items[j].text)
			runWidth += line.items[j].width
			j++
		}
		fs := fontStyleFor(it.styled.Style)
		runBox := &Box{
			Type:     TextRun,
			Styled:   it.styled,
			X:        x + it.x,
			Y:        lineTop,
			Width:    runWidth,
			Height:   lineHeight,
			Text:     sb.String(),
			Bold:     fs.Bold,
			Italic:   fs.Italic,
			Mono:     fs.Mono,
			FontSize: fs.Size,
			Baseline: baseline,
		}
		anon.addChild(runBox)
		i = j
	}
	return lineHeight
}

func fontStyleFor(style *css.Style) text.FontStyle {
	weight, _ := style.Get("font-weight")
	slant, _ := style.Get("font-style")
	family, _ := style.Get("font-family")
	return text.StyleFromProperties(style.FontSize(), weight, slant, family)
}

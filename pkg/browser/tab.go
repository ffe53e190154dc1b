// Package browser ties the pipeline together: fetch, parse, style,
// layout and paint, plus the per-tab state a shell needs (history,
// scrolling, link clicks).
package browser

import (
	"context"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/copaaglo/mybrowser/pkg/css"
	"github.com/copaaglo/mybrowser/pkg/html"
	"github.com/copaaglo/mybrowser/pkg/images"
	"github.com/copaaglo/mybrowser/pkg/layout"
	"github.com/copaaglo/mybrowser/pkg/net"
	"github.com/copaaglo/mybrowser/pkg/paint"
)

// FetchFunc retrieves a resource: body bytes, content type, error.
type FetchFunc func(ctx context.Context, url string) (body []byte, contentType string, err error)

// Page is the fully rendered result of one navigation. All fields are
// immutable once Load returns.
type Page struct {
	URL         string
	Title       string
	DOM         *html.Node
	Styled      *css.StyledNode
	Layout      *layout.Box
	DisplayList []paint.DisplayItem
	Height      float64
}

// Tab is one browsing context. It is not safe for concurrent use; the
// shell serializes calls onto it.
type Tab struct {
	fetch  FetchFunc
	loader *images.Loader
	engine *layout.Engine

	ViewportWidth  float64
	ViewportHeight float64

	page    *Page
	history []string
	histPos int
	scroll  float64
}

func NewTab(viewportWidth, viewportHeight float64) *Tab {
	t := &Tab{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		histPos:        -1,
	}
	fetcher := net.NewFetcher()
	t.fetch = fetcher.Fetch
	t.resetLoader()
	return t
}

// SetFetchFunc replaces the resource fetcher; tests inject fakes here.
func (t *Tab) SetFetchFunc(f FetchFunc) {
	t.fetch = f
	t.resetLoader()
}

func (t *Tab) resetLoader() {
	t.loader = images.NewLoader(func(ctx context.Context, url string) ([]byte, error) {
		body, _, err := t.fetch(ctx, url)
		return body, err
	})
	t.engine = layout.NewEngine()
}

// Page returns the current rendered page, or nil before any load.
func (t *Tab) Page() *Page { return t.page }

// Load navigates to the URL, pushing a new history entry and dropping
// any forward entries.
func (t *Tab) Load(ctx context.Context, url string) error {
	if err := t.navigate(ctx, url); err != nil {
		return err
	}
	t.history = append(t.history[:t.histPos+1], url)
	t.histPos = len(t.history) - 1
	return nil
}

// LoadHTML renders document source directly, without fetching. Relative
// references resolve against baseURL. No history entry is created.
func (t *Tab) LoadHTML(ctx context.Context, source, baseURL string) error {
	return t.render(ctx, []byte(source), baseURL)
}

// Back re-renders the previous history entry, if any.
func (t *Tab) Back(ctx context.Context) error {
	if t.histPos <= 0 {
		return nil
	}
	if err := t.navigate(ctx, t.history[t.histPos-1]); err != nil {
		return err
	}
	t.histPos--
	return nil
}

// Forward re-renders the next history entry, if any.
func (t *Tab) Forward(ctx context.Context) error {
	if t.histPos+1 >= len(t.history) {
		return nil
	}
	if err := t.navigate(ctx, t.history[t.histPos+1]); err != nil {
		return err
	}
	t.histPos++
	return nil
}

// Reload re-fetches and re-renders the current page.
func (t *Tab) Reload(ctx context.Context) error {
	if t.histPos < 0 {
		return nil
	}
	return t.navigate(ctx, t.history[t.histPos])
}

// CanBack and CanForward report history availability for shell chrome.
func (t *Tab) CanBack() bool    { return t.histPos > 0 }
func (t *Tab) CanForward() bool { return t.histPos+1 < len(t.history) }

func (t *Tab) navigate(ctx context.Context, url string) error {
	body, _, err := t.fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}
	return t.render(ctx, body, url)
}

// render runs the full pipeline over the document bytes. The only hard
// failure in the document itself is invalid UTF-8; everything else is
// recovered by the tolerant parsers.
func (t *Tab) render(ctx context.Context, body []byte, url string) error {
	if !utf8.Valid(body) {
		return fmt.Errorf("document at %s is not valid UTF-8", url)
	}

	dom := html.Parse(string(body))
	author := t.collectStylesheets(ctx, dom, url)
	styled := css.NewEngine(author).StyleTree(dom)

	t.preloadImages(ctx, dom, url)
	// Layout sees raw src attributes; the cache is keyed by absolute URL.
	t.engine.ImageSize = func(src string) (int, int, bool) {
		return t.loader.Size(net.ResolveURL(url, src))
	}

	box := t.engine.Layout(styled, t.ViewportWidth)
	list := paint.Paint(box)

	height := 0.0
	if box != nil {
		height = box.MarginHeight()
	}
	t.page = &Page{
		URL:         url,
		Title:       pageTitle(dom),
		DOM:         dom,
		Styled:      styled,
		Layout:      box,
		DisplayList: list,
		Height:      height,
	}
	t.scroll = 0
	return nil
}

// collectStylesheets gathers author CSS in document order: <style>
// blocks inline, <link rel="stylesheet"> fetched relative to the page.
// A stylesheet that fails to fetch is skipped; the page still renders.
func (t *Tab) collectStylesheets(ctx context.Context, dom *html.Node, baseURL string) *css.Stylesheet {
	combined := &css.Stylesheet{}
	appendSheet := func(source string) {
		for _, rule := range css.ParseStylesheet(source).Rules {
			rule.Order = len(combined.Rules)
			combined.Rules = append(combined.Rules, rule)
		}
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.ElementNode && n.TagName == "style":
			appendSheet(n.TextContent())
		case n.Type == html.ElementNode && n.TagName == "link":
			rel, _ := n.GetAttribute("rel")
			href, ok := n.GetAttribute("href")
			if strings.EqualFold(strings.TrimSpace(rel), "stylesheet") && ok && href != "" {
				body, _, err := t.fetch(ctx, net.ResolveURL(baseURL, href))
				if err == nil {
					appendSheet(string(body))
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(dom)
	return combined
}

// preloadImages fetches every <img> source so layout can see intrinsic
// sizes. Broken images are left for the rasterizer's placeholder.
func (t *Tab) preloadImages(ctx context.Context, dom *html.Node, baseURL string) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.TagName == "img" {
			if src, ok := n.GetAttribute("src"); ok && src != "" {
				t.loader.Load(ctx, net.ResolveURL(baseURL, src))
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(dom)
}

func pageTitle(dom *html.Node) string {
	if title := dom.FindFirst("title"); title != nil {
		return strings.TrimSpace(title.TextContent())
	}
	return ""
}

// Images exposes the tab's image cache to the rasterizer.
func (t *Tab) Images() *images.Loader { return t.loader }

// ResolveImage returns the decoded image for a display list src, which
// is the document's raw attribute value. Nil means broken or unloaded.
func (t *Tab) ResolveImage(src string) image.Image {
	if t.page == nil {
		return nil
	}
	return t.loader.Get(net.ResolveURL(t.page.URL, src))
}

// Scroll returns the current vertical scroll offset.
func (t *Tab) Scroll() float64 { return t.scroll }

// ScrollBy moves the viewport and clamps to the document extent.
func (t *Tab) ScrollBy(dy float64) {
	t.scroll += dy
	max := 0.0
	if t.page != nil && t.page.Height > t.ViewportHeight {
		max = t.page.Height - t.ViewportHeight
	}
	if t.scroll > max {
		t.scroll = max
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

// Click hit-tests a viewport coordinate and follows the link under it,
// if any. Returns whether a navigation happened.
func (t *Tab) Click(ctx context.Context, x, y float64) (bool, error) {
	if t.page == nil || t.page.Layout == nil {
		return false, nil
	}
	hit := layout.HitTest(t.page.Layout, x, y+t.scroll)
	if hit == nil {
		return false, nil
	}
	href, ok := layout.LinkTarget(hit)
	if !ok || href == "" {
		return false, nil
	}
	target := net.ResolveURL(t.page.URL, href)
	if err := t.Load(ctx, target); err != nil {
		return false, err
	}
	return true, nil
}

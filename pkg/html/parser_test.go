package html

import "testing"

// childElements returns the element children of a node, skipping text
// and comments.
func childElements(n *Node) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func TestParse_SynthesizesWrappers(t *testing.T) {
	root := Parse("<p>Hi</p>")
	if root.TagName != "html" {
		t.Fatalf("expected html root, got %q", root.TagName)
	}
	els := childElements(root)
	if len(els) != 1 || els[0].TagName != "body" {
		t.Fatalf("expected synthesized body, got %+v", els)
	}
	body := els[0]
	if len(body.Children) != 1 || body.Children[0].TagName != "p" {
		t.Fatalf("expected body > p, got %+v", body.Children)
	}
	p := body.Children[0]
	if len(p.Children) != 1 || p.Children[0].Type != TextNode || p.Children[0].Text != "Hi" {
		t.Fatalf("expected p > text(Hi), got %+v", p.Children)
	}
}

func TestParse_HeadContentRouted(t *testing.T) {
	root := Parse("<title>Page</title><p>body text</p>")
	els := childElements(root)
	if len(els) != 2 || els[0].TagName != "head" || els[1].TagName != "body" {
		t.Fatalf("expected head then body, got %+v", els)
	}
	title := els[0].FindFirst("title")
	if title == nil || title.TextContent() != "Page" {
		t.Errorf("expected title in head, got %v", title)
	}
}

func TestParse_ExplicitWrappersNotDuplicated(t *testing.T) {
	root := Parse("<html><head><title>x</title></head><body><p>y</p></body></html>")
	els := childElements(root)
	if len(els) != 2 {
		t.Fatalf("expected exactly head and body, got %d elements", len(els))
	}
	if els[0].TagName != "head" || els[1].TagName != "body" {
		t.Errorf("expected head, body; got %q, %q", els[0].TagName, els[1].TagName)
	}
}

func TestParse_UnclosedTagsAutoClose(t *testing.T) {
	root := Parse("<div><p>one<p>two</div><p>three")
	body := root.FindFirst("body")
	div := body.Children[0]
	if div.TagName != "div" {
		t.Fatalf("expected div, got %q", div.TagName)
	}
	// The second <p> auto-closes the first; both stay inside the div.
	if len(div.Children) != 2 {
		t.Fatalf("expected 2 paragraphs in div, got %d", len(div.Children))
	}
	if div.Children[0].TextContent() != "one" || div.Children[1].TextContent() != "two" {
		t.Errorf("unexpected paragraph contents: %q, %q",
			div.Children[0].TextContent(), div.Children[1].TextContent())
	}
	// The trailing unclosed <p> lands in body, closed at EOF.
	if len(body.Children) != 2 || body.Children[1].TextContent() != "three" {
		t.Errorf("expected trailing paragraph in body, got %+v", body.Children)
	}
}

func TestParse_StrayEndTagIgnored(t *testing.T) {
	root := Parse("<p>a</span>b</p>")
	p := root.FindFirst("p")
	if p == nil || p.TextContent() != "ab" {
		t.Fatalf("stray end tag should be ignored, got %v", p)
	}
}

func TestParse_VoidElementsHaveNoChildren(t *testing.T) {
	root := Parse("<p>a<br>b<img src=x>c</p>")
	p := root.FindFirst("p")
	if len(p.Children) != 5 {
		t.Fatalf("expected 5 children (text, br, text, img, text), got %d", len(p.Children))
	}
	br := p.Children[1]
	if br.TagName != "br" || len(br.Children) != 0 {
		t.Errorf("br must have no children, got %+v", br)
	}
	img := p.Children[3]
	if img.TagName != "img" || len(img.Children) != 0 {
		t.Errorf("img must have no children, got %+v", img)
	}
}

func TestParse_RawTextStyle(t *testing.T) {
	root := Parse("<style>p { color: red; }</style><p>x</p>")
	style := root.FindFirst("style")
	if style == nil {
		t.Fatal("expected style element")
	}
	if style.TextContent() != "p { color: red; }" {
		t.Errorf("style content not raw: %q", style.TextContent())
	}
	if style.Ancestor("html") == nil {
		t.Error("style should be attached under the root")
	}
	if root.FindFirst("p") == nil {
		t.Error("parsing should continue after the style element")
	}
}

func TestParse_ScriptContentNotParsed(t *testing.T) {
	root := Parse("<script>if (a < b) { x = '<p>'; }</script><p>after</p>")
	script := root.FindFirst("script")
	if script == nil || script.TextContent() != "if (a < b) { x = '<p>'; }" {
		t.Fatalf("script content should be raw, got %v", script)
	}
	p := root.FindFirst("p")
	if p == nil || p.TextContent() != "after" {
		t.Errorf("expected parsing to resume after script, got %v", p)
	}
}

func TestParse_CommentsPreserved(t *testing.T) {
	root := Parse("<p>a<!-- hidden -->b</p>")
	p := root.FindFirst("p")
	if len(p.Children) != 3 {
		t.Fatalf("expected text, comment, text; got %d children", len(p.Children))
	}
	if p.Children[1].Type != CommentNode || p.Children[1].Text != " hidden " {
		t.Errorf("expected comment node, got %+v", p.Children[1])
	}
}

func TestParse_EmptyAndGarbageInput(t *testing.T) {
	inputs := []string{"", "   ", "<", "</", "<!--", "<><<>>", "</nope>"}
	for _, in := range inputs {
		root := Parse(in)
		if root == nil || root.TagName != "html" {
			t.Errorf("input %q: expected non-nil html root, got %v", in, root)
		}
	}
}

func TestParse_ParentPointers(t *testing.T) {
	root := Parse("<div><p><em>x</em></p></div>")
	em := root.FindFirst("em")
	if em.Parent == nil || em.Parent.TagName != "p" {
		t.Fatalf("expected em parent p, got %v", em.Parent)
	}
	if em.Ancestor("div") == nil {
		t.Error("expected div ancestor")
	}
	if root.Parent != nil {
		t.Error("root must have no parent")
	}
}

func TestParse_AnchorAncestorForLinkText(t *testing.T) {
	root := Parse(`<p><a href="/next">go <b>now</b></a></p>`)
	var findText func(n *Node) *Node
	findText = func(n *Node) *Node {
		if n.Type == TextNode && n.Text == "now" {
			return n
		}
		for _, c := range n.Children {
			if f := findText(c); f != nil {
				return f
			}
		}
		return nil
	}
	text := findText(root)
	if text == nil {
		t.Fatal("text node not found")
	}
	a := text.Ancestor("a")
	if a == nil {
		t.Fatal("expected anchor ancestor")
	}
	if href, _ := a.GetAttribute("href"); href != "/next" {
		t.Errorf("expected href /next, got %q", href)
	}
}

// Reparsing the serialized DOM must reproduce the same structure.
func TestParse_SerializeReparseIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Hi</p>",
		`<div id="a" class="b c"><p>one</p><p>two <em>three</em></p></div>`,
		`<ul><li>x<li>y</ul>`,
		`<p><a href="/z">link</a> tail</p>`,
	}
	for _, in := range inputs {
		first := Parse(in).Serialize()
		second := Parse(first).Serialize()
		if first != second {
			t.Errorf("input %q: serialize/reparse not stable:\n first: %s\nsecond: %s", in, first, second)
		}
	}
}

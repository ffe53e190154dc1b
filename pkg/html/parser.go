package html

// Parser builds a DOM tree from a token stream using an explicit
// open-element stack. It is tolerant by construction: unclosed tags are
// auto-closed at the nearest matching ancestor, stray end tags are
// ignored, and missing html/head/body wrappers are synthesized around
// loose content. Parsing never fails; the worst input yields an empty
// <html> root.
type Parser struct {
	tokenizer *Tokenizer
	root      *Node
	head      *Node
	body      *Node
	stack     []*Node
}

func NewParser(input string) *Parser {
	return &Parser{tokenizer: NewTokenizer(input)}
}

// Parse runs the tree builder and returns the document root, always an
// <html> element.
func Parse(input string) *Node {
	return NewParser(input).Parse()
}

func (p *Parser) Parse() *Node {
	p.root = NewElement("html")
	p.stack = []*Node{p.root}

	for {
		token := p.tokenizer.Next()
		if token.Type == TokenEOF {
			break
		}
		switch token.Type {
		case TokenStartTag:
			p.handleStartTag(token)
		case TokenEndTag:
			p.handleEndTag(token.TagName)
		case TokenText:
			p.insertionParentForText().AppendText(token.Text)
		case TokenComment:
			p.top().AddChild(NewComment(token.Text))
		}
	}
	return p.root
}

func (p *Parser) handleStartTag(token Token) {
	switch token.TagName {
	case "html":
		// Merge into the synthesized root rather than nesting.
		p.mergeAttributes(p.root, token.Attributes)
		return
	case "head":
		h := p.ensureHead()
		p.mergeAttributes(h, token.Attributes)
		p.push(h)
		return
	case "body":
		p.popToRoot()
		b := p.ensureBody()
		p.mergeAttributes(b, token.Attributes)
		p.push(b)
		return
	}

	if isRawTextTag(token.TagName) {
		el := p.newElement(token)
		p.insertionParent(token.TagName).AddChild(el)
		if raw := p.tokenizer.ReadRawText(token.TagName); raw != "" {
			el.AppendText(raw)
		}
		return
	}

	if isBlockTag(token.TagName) {
		p.autoCloseP()
	}

	el := p.newElement(token)
	p.insertionParent(token.TagName).AddChild(el)

	if !IsVoidElement(token.TagName) && !token.SelfClosing {
		p.push(el)
	}
}

func (p *Parser) handleEndTag(tag string) {
	switch tag {
	case "html":
		p.popToRoot()
		return
	}
	// Pop the stack to the matching open element; a stray end tag with
	// no matching ancestor is ignored.
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tag {
			p.stack = p.stack[:i]
			return
		}
	}
}

// mergeAttributes copies attributes onto an already-synthesized
// element. Existing values win, matching the duplicate-attribute rule.
func (p *Parser) mergeAttributes(el *Node, attrs map[string]string) {
	for k, v := range attrs {
		if _, ok := el.Attributes[k]; !ok {
			el.Attributes[k] = v
		}
	}
}

func (p *Parser) newElement(token Token) *Node {
	el := NewElement(token.TagName)
	el.Attributes = token.Attributes
	if el.Attributes == nil {
		el.Attributes = make(map[string]string)
	}
	return el
}

// insertionParent decides where a new element lands. Content arriving
// while the root is current gets routed into a synthesized head (for
// metadata tags) or body (for everything else).
func (p *Parser) insertionParent(tag string) *Node {
	if p.top() != p.root {
		return p.top()
	}
	if isHeadOnlyTag(tag) {
		return p.ensureHead()
	}
	return p.pushBody()
}

func (p *Parser) insertionParentForText() *Node {
	if p.top() == p.root {
		return p.pushBody()
	}
	return p.top()
}

func (p *Parser) ensureHead() *Node {
	if p.head != nil {
		return p.head
	}
	p.head = NewElement("head")
	p.head.Parent = p.root
	if p.body != nil {
		// Keep head before body.
		idx := 0
		for i, c := range p.root.Children {
			if c == p.body {
				idx = i
				break
			}
		}
		p.root.Children = append(p.root.Children, nil)
		copy(p.root.Children[idx+1:], p.root.Children[idx:])
		p.root.Children[idx] = p.head
	} else {
		p.root.Children = append(p.root.Children, p.head)
	}
	return p.head
}

func (p *Parser) ensureBody() *Node {
	if p.body == nil {
		p.body = NewElement("body")
		p.root.AddChild(p.body)
	}
	return p.body
}

// pushBody makes the body the current insertion point and returns it.
func (p *Parser) pushBody() *Node {
	b := p.ensureBody()
	if p.top() != b {
		p.push(b)
	}
	return b
}

func (p *Parser) top() *Node {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(n *Node) {
	p.stack = append(p.stack, n)
}

func (p *Parser) popToRoot() {
	p.stack = p.stack[:1]
}

// autoCloseP closes an open <p> when a block-level start tag arrives
// inside it, without closing past an enclosing block container.
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		if isBlockTag(p.stack[i].TagName) {
			return
		}
	}
}

func isRawTextTag(tag string) bool {
	return tag == "script" || tag == "style"
}

func isHeadOnlyTag(tag string) bool {
	switch tag {
	case "title", "meta", "link", "base", "style", "script":
		return true
	}
	return false
}

func isBlockTag(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}

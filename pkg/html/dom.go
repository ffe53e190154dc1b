package html

import (
	"sort"
	"strings"
)

// NodeType tags the closed set of DOM node variants.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

// Node is a single node in the document tree. Children are owned by their
// parent; Parent is a back-reference used only for ancestor traversal.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

// NewElement creates an element node with the given tag name.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: make(map[string]string),
	}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// NewComment creates a comment node.
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Text: text}
}

// GetAttribute returns the value of the named attribute.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// ID returns the element's id attribute, or the empty string.
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return strings.TrimSpace(id)
}

// Classes returns the whitespace-separated class list of the element.
func (n *Node) Classes() []string {
	cls, ok := n.GetAttribute("class")
	if !ok {
		return nil
	}
	return strings.Fields(cls)
}

// HasClass reports whether the element carries the given class.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddChild appends a child node and sets its parent back-reference.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText adds a text node child. Empty text is dropped.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// FindFirst returns the first descendant element with the given tag name,
// in document order, or nil.
func (n *Node) FindFirst(tag string) *Node {
	if n.Type == ElementNode && n.TagName == tag {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindFirst(tag); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates all descendant text, in document order.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	if n.Type == TextNode {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.appendText(sb)
	}
}

// Ancestor walks up the parent chain and returns the nearest ancestor
// element with the given tag name, or nil. The receiver itself is not
// considered.
func (n *Node) Ancestor(tag string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == ElementNode && p.TagName == tag {
			return p
		}
	}
	return nil
}

// Serialize returns the node's outer HTML. Attribute order is sorted so
// the output is deterministic; comments round-trip.
func (n *Node) Serialize() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	switch n.Type {
	case TextNode:
		sb.WriteString(escapeText(n.Text))
		return
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Text)
		sb.WriteString("-->")
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(escapeAttr(n.Attributes[k]))
			sb.WriteByte('"')
		}
	}
	sb.WriteByte('>')

	if IsVoidElement(n.TagName) {
		return
	}
	for _, c := range n.Children {
		serializeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// IsVoidElement reports whether the tag never has children or a close tag.
func IsVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

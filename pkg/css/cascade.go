package css

import "github.com/copaaglo/mybrowser/pkg/html"

// StyledNode pairs a DOM node with its computed style. The styled tree
// mirrors the DOM and is rebuilt from scratch on every render pass;
// styles are not mutated once layout has started.
type StyledNode struct {
	Node     *html.Node
	Style    *Style
	Children []*StyledNode
}

// inheritedProperties are copied from the parent's computed style when
// the element does not set them itself.
var inheritedProperties = []string{
	"color",
	"font-size",
	"font-family",
	"font-style",
	"font-weight",
	"line-height",
	"text-align",
	// Not inherited in full CSS, but decorations propagate to all inline
	// descendants; inheriting gives the same result in this engine.
	"text-decoration",
}

// rootDefaults seed the inheritable properties at the tree root so every
// computed style resolves them to a concrete value.
var rootDefaults = map[string]string{
	"font-size": "16px",
	"color":     "black",
}

// Engine resolves the cascade for a whole DOM tree. Precedence, lowest
// to highest: built-in user agent stylesheet, author rules (by
// specificity, then source order), inline style attributes.
type Engine struct {
	userAgent *Stylesheet
	author    *Stylesheet
}

// NewEngine creates a style engine for the given author stylesheet. A
// nil stylesheet is treated as empty.
func NewEngine(author *Stylesheet) *Engine {
	if author == nil {
		author = &Stylesheet{}
	}
	return &Engine{userAgent: UserAgentStylesheet(), author: author}
}

// StyleTree computes a style for every node under root.
func (e *Engine) StyleTree(root *html.Node) *StyledNode {
	return e.styleNode(root, nil)
}

func (e *Engine) styleNode(node *html.Node, parent *Style) *StyledNode {
	style := NewStyle()

	if parent == nil {
		for k, v := range rootDefaults {
			style.Set(k, v)
		}
	} else {
		for _, prop := range inheritedProperties {
			if v, ok := parent.Get(prop); ok {
				style.Set(prop, v)
			}
		}
	}

	if node.Type == html.ElementNode {
		// User agent rules first so any author rule overrides them
		// regardless of specificity.
		for _, rule := range e.userAgent.MatchingRules(node) {
			applyDeclarations(style, rule.Declarations)
		}
		for _, rule := range e.author.MatchingRules(node) {
			applyDeclarations(style, rule.Declarations)
		}
		// Inline style wins over everything.
		if inline, ok := node.GetAttribute("style"); ok {
			applyDeclarations(style, ParseInline(inline))
		}
	}

	styled := &StyledNode{Node: node, Style: style}
	for _, child := range node.Children {
		styled.Children = append(styled.Children, e.styleNode(child, style))
	}
	return styled
}

func applyDeclarations(style *Style, decls []Declaration) {
	for _, d := range decls {
		style.Set(d.Property, d.Value)
	}
}

package css

import (
	"sort"

	"github.com/copaaglo/mybrowser/pkg/html"
)

// Matches reports whether the element matches the selector. The last
// part of the chain must match the element itself; each earlier part
// must match some ancestor, in order (descendant combinator semantics).
func Matches(sel Selector, el *html.Node) bool {
	if el == nil || el.Type != html.ElementNode {
		return false
	}
	n := len(sel.Parts)
	if n == 0 {
		return false
	}
	if !matchesSimple(sel.Parts[n-1], el) {
		return false
	}
	// Walk the ancestor chain upward, consuming chain parts right to
	// left. Taking the nearest matching ancestor is safe for descendant
	// combinators: it leaves the most ancestors for the remaining parts.
	anc := el.Parent
	for i := n - 2; i >= 0; i-- {
		for {
			if anc == nil {
				return false
			}
			isMatch := anc.Type == html.ElementNode && matchesSimple(sel.Parts[i], anc)
			anc = anc.Parent
			if isMatch {
				break
			}
		}
	}
	return true
}

func matchesSimple(s SimpleSelector, el *html.Node) bool {
	if s.Universal {
		return true
	}
	if s.Tag != "" && el.TagName != s.Tag {
		return false
	}
	if s.ID != "" && el.ID() != s.ID {
		return false
	}
	if s.Class != "" && !el.HasClass(s.Class) {
		return false
	}
	return true
}

// MatchingRules returns the stylesheet's rules matching the element,
// sorted ascending by specificity with source order breaking ties, so
// applying them in sequence makes the strongest declaration win.
func (sheet *Stylesheet) MatchingRules(el *html.Node) []Rule {
	var out []Rule
	for _, rule := range sheet.Rules {
		if Matches(rule.Selector, el) {
			out = append(out, rule)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ruleLess(out[i], out[j])
	})
	return out
}

func ruleLess(a, b Rule) bool {
	as, bs := a.Selector.Specificity(), b.Selector.Specificity()
	if as.Less(bs) {
		return true
	}
	if bs.Less(as) {
		return false
	}
	return a.Order < b.Order
}

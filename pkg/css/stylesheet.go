package css

import "strings"

// SimpleSelector is one compound segment of a selector: a tag name, a
// class, an id, the universal selector, or a combination written without
// spaces (e.g. p.note).
type SimpleSelector struct {
	Universal bool
	Tag       string
	Class     string
	ID        string
}

// Selector is a descendant-combinator chain of simple selectors. The last
// part is the subject; earlier parts must match ancestors in order.
type Selector struct {
	Parts []SimpleSelector
	Raw   string
}

// Specificity is the (id, class, tag) weight triple used by the cascade.
type Specificity struct {
	IDs     int
	Classes int
	Tags    int
}

// Less orders specificities id-count first, then classes, then tags.
func (s Specificity) Less(o Specificity) bool {
	if s.IDs != o.IDs {
		return s.IDs < o.IDs
	}
	if s.Classes != o.Classes {
		return s.Classes < o.Classes
	}
	return s.Tags < o.Tags
}

// Specificity sums the weights of every part in the chain.
func (sel Selector) Specificity() Specificity {
	var sp Specificity
	for _, p := range sel.Parts {
		if p.ID != "" {
			sp.IDs++
		}
		if p.Class != "" {
			sp.Classes++
		}
		if p.Tag != "" {
			sp.Tags++
		}
	}
	return sp
}

// Declaration is a single property: value pair. Order within a rule is
// preserved from the source.
type Declaration struct {
	Property string
	Value    string
}

// Rule pairs a selector with its declarations. Order is the rule's
// position in the stylesheet, strictly increasing as parsed, and breaks
// specificity ties (later wins).
type Rule struct {
	Selector     Selector
	Declarations []Declaration
	Order        int
}

// Stylesheet is an ordered rule list.
type Stylesheet struct {
	Rules []Rule
}

// parseSelector parses one selector (no commas). Returns ok=false for
// anything outside the supported grammar, which skips the whole rule.
func parseSelector(raw string) (Selector, bool) {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return Selector{}, false
	}
	sel := Selector{Raw: strings.Join(parts, " ")}
	for _, p := range parts {
		simple, ok := parseSimpleSelector(p)
		if !ok {
			return Selector{}, false
		}
		sel.Parts = append(sel.Parts, simple)
	}
	return sel, true
}

func parseSimpleSelector(token string) (SimpleSelector, bool) {
	if token == "*" {
		return SimpleSelector{Universal: true}, true
	}
	var s SimpleSelector
	rest := token
	// Leading tag name, if any.
	i := 0
	for i < len(rest) && isIdentChar(rest[i]) {
		i++
	}
	if i > 0 {
		s.Tag = strings.ToLower(rest[:i])
		rest = rest[i:]
	}
	// Then any number of .class / #id suffixes.
	for rest != "" {
		marker := rest[0]
		if marker != '.' && marker != '#' {
			return SimpleSelector{}, false
		}
		rest = rest[1:]
		j := 0
		for j < len(rest) && isIdentChar(rest[j]) {
			j++
		}
		if j == 0 {
			return SimpleSelector{}, false
		}
		name := rest[:j]
		rest = rest[j:]
		switch marker {
		case '.':
			if s.Class != "" {
				return SimpleSelector{}, false
			}
			s.Class = name
		case '#':
			if s.ID != "" {
				return SimpleSelector{}, false
			}
			s.ID = name
		}
	}
	if !s.Universal && s.Tag == "" && s.Class == "" && s.ID == "" {
		return SimpleSelector{}, false
	}
	return s, true
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_'
}

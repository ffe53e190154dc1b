package css

import "strings"

// ParseStylesheet parses author stylesheet text into an ordered rule
// list. Recovery is browser-style: a malformed declaration is skipped and
// parsing resumes at the next semicolon; a malformed selector skips the
// whole rule; an unterminated block consumes the rest of the input. The
// parser never fails.
func ParseStylesheet(source string) *Stylesheet {
	p := &parser{input: stripComments(source)}
	sheet := &Stylesheet{}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.input) {
			break
		}
		if p.input[p.pos] == '@' {
			p.skipAtRule()
			continue
		}
		selectorText, ok := p.readUntilByte('{')
		if !ok {
			break // no more rules
		}
		block := p.readBlock()

		decls := parseDeclarationList(block)
		if len(decls) == 0 {
			continue
		}
		// Selector lists: each selector becomes its own rule with its
		// own source order index.
		for _, raw := range strings.Split(selectorText, ",") {
			sel, ok := parseSelector(raw)
			if !ok {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{
				Selector:     sel,
				Declarations: decls,
				Order:        len(sheet.Rules),
			})
		}
	}
	return sheet
}

// ParseInline parses a style attribute's text into a flat declaration
// list, with the same per-declaration recovery as stylesheet blocks.
func ParseInline(source string) []Declaration {
	return parseDeclarationList(stripComments(source))
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

// readUntilByte returns the input up to (not including) the target byte
// and consumes the target. Returns ok=false if the target never appears.
func (p *parser) readUntilByte(target byte) (string, bool) {
	idx := strings.IndexByte(p.input[p.pos:], target)
	if idx == -1 {
		p.pos = len(p.input)
		return "", false
	}
	out := p.input[p.pos : p.pos+idx]
	p.pos += idx + 1
	return out, true
}

// readBlock consumes up to the matching close brace (the open brace has
// already been consumed) and returns the content between the braces.
// Nested braces from malformed input are balanced so recovery resumes at
// the right place.
func (p *parser) readBlock() string {
	start := p.pos
	depth := 1
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				block := p.input[start:p.pos]
				p.pos++
				return block
			}
		}
		p.pos++
	}
	return p.input[start:] // unterminated: take the rest
}

// skipAtRule skips @media, @import and friends: either to the first
// semicolon or past a balanced brace block. The supported subset has no
// at-rules, so their content is dropped entirely.
func (p *parser) skipAtRule() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ';' {
			p.pos++
			return
		}
		if c == '{' {
			p.pos++
			p.readBlock()
			return
		}
		p.pos++
	}
}

// parseDeclarationList splits a block on semicolons and keeps every
// declaration it can make sense of, expanding shorthands in place.
func parseDeclarationList(block string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(block, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.IndexByte(part, ':')
		if colon == -1 {
			continue // unparsable: declaration-level recovery
		}
		property := strings.ToLower(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		if !isValidProperty(property) || value == "" {
			continue
		}
		decls = expandShorthand(decls, property, value)
	}
	return decls
}

func isValidProperty(p string) bool {
	if p == "" {
		return false
	}
	for i := 0; i < len(p); i++ {
		if !isIdentChar(p[i]) {
			return false
		}
	}
	return true
}

// expandShorthand appends the declaration, splitting margin/padding and
// border shorthands into their longhand parts so the cascade only ever
// deals with longhands.
func expandShorthand(decls []Declaration, property, value string) []Declaration {
	switch property {
	case "margin", "padding":
		top, right, bottom, left, ok := splitBoxShorthand(value)
		if !ok {
			return decls
		}
		return append(decls,
			Declaration{property + "-top", top},
			Declaration{property + "-right", right},
			Declaration{property + "-bottom", bottom},
			Declaration{property + "-left", left},
		)
	case "border":
		return append(decls, expandBorderShorthand(value)...)
	default:
		return append(decls, Declaration{property, value})
	}
}

// splitBoxShorthand applies the 1/2/3/4-value expansion used by margin
// and padding.
func splitBoxShorthand(value string) (top, right, bottom, left string, ok bool) {
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		return parts[0], parts[0], parts[0], parts[0], true
	case 2:
		return parts[0], parts[1], parts[0], parts[1], true
	case 3:
		return parts[0], parts[1], parts[2], parts[1], true
	case 4:
		return parts[0], parts[1], parts[2], parts[3], true
	}
	return "", "", "", "", false
}

// expandBorderShorthand handles "border: 1px solid black" style values.
func expandBorderShorthand(value string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Fields(value) {
		switch {
		case isLengthToken(part):
			for _, side := range []string{"top", "right", "bottom", "left"} {
				decls = append(decls, Declaration{"border-" + side + "-width", part})
			}
		case part == "solid" || part == "dotted" || part == "dashed" ||
			part == "double" || part == "none":
			decls = append(decls, Declaration{"border-style", part})
		default:
			decls = append(decls, Declaration{"border-color", part})
		}
	}
	return decls
}

func isLengthToken(s string) bool {
	_, ok := ParseLength(s)
	return ok
}

// stripComments removes /* ... */ runs; an unterminated comment swallows
// the rest of the input.
func stripComments(s string) string {
	var sb strings.Builder
	i := 0
	for i < len(s) {
		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				break
			}
			i += 2 + end + 2
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

package html

import (
	gohtml "html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenComment
	TokenEOF
)

type Token struct {
	Type        TokenType
	TagName     string
	Attributes  map[string]string
	Text        string
	SelfClosing bool // <tag/> XHTML syntax
}

// Tokenizer splits HTML text into start-tag, end-tag, text and comment
// tokens. It never fails: anything it cannot make sense of is passed
// through as text or silently skipped.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

func (t *Tokenizer) Next() Token {
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}
	if t.input[t.pos] == '<' {
		return t.readMarkup()
	}
	return t.readText()
}

func (t *Tokenizer) readMarkup() Token {
	// A '<' that does not open a tag is literal text.
	if !t.looksLikeTag() {
		return t.readLiteralAngle()
	}
	t.pos++ // consume '<'

	// <!-- comment -->
	if strings.HasPrefix(t.input[t.pos:], "!--") {
		t.pos += 3
		end := strings.Index(t.input[t.pos:], "-->")
		if end == -1 {
			text := t.input[t.pos:]
			t.pos = len(t.input)
			return Token{Type: TokenComment, Text: text}
		}
		text := t.input[t.pos : t.pos+end]
		t.pos += end + 3
		return Token{Type: TokenComment, Text: text}
	}

	// <!DOCTYPE ...> and other declarations: skip to '>'
	if t.input[t.pos] == '!' {
		t.skipPast('>')
		return t.Next()
	}

	// <?xml ...?> processing instructions: skip
	if t.input[t.pos] == '?' {
		t.skipPast('>')
		return t.Next()
	}

	isEnd := false
	if t.input[t.pos] == '/' {
		isEnd = true
		t.pos++
	}
	tag := t.readTagName()
	if isEnd {
		t.skipPast('>')
		return Token{Type: TokenEndTag, TagName: tag}
	}

	attrs := make(map[string]string)
	selfClosing := false
	for t.pos < len(t.input) {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			break // truncated tag: emit what we have
		}
		if t.input[t.pos] == '>' {
			t.pos++
			break
		}
		if t.input[t.pos] == '/' {
			t.pos++
			t.skipWhitespace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				selfClosing = true
				break
			}
			continue
		}
		name, value, ok := t.readAttribute()
		if !ok {
			// Garbage inside the tag: step over one byte and retry.
			t.pos++
			continue
		}
		if _, dup := attrs[name]; !dup {
			attrs[name] = value
		}
	}
	return Token{Type: TokenStartTag, TagName: tag, Attributes: attrs, SelfClosing: selfClosing}
}

// looksLikeTag peeks past the current '<' to decide whether it starts a
// real tag, comment, or declaration.
func (t *Tokenizer) looksLikeTag() bool {
	if t.pos+1 >= len(t.input) {
		return false
	}
	c := t.input[t.pos+1]
	return isTagNameChar(c) || c == '/' || c == '!' || c == '?'
}

// readLiteralAngle consumes a stray '<' plus any following text up to the
// next potential tag and emits it as a text token.
func (t *Tokenizer) readLiteralAngle() Token {
	start := t.pos
	t.pos++
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	return t.textToken(t.input[start:t.pos])
}

func (t *Tokenizer) readTagName() string {
	start := t.pos
	for t.pos < len(t.input) && isTagNameChar(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) readAttribute() (name, value string, ok bool) {
	start := t.pos
	for t.pos < len(t.input) && isAttrNameChar(t.input[t.pos]) {
		t.pos++
	}
	name = strings.ToLower(t.input[start:t.pos])
	if name == "" {
		return "", "", false
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return name, "", true // bare attribute
	}
	t.pos++
	t.skipWhitespace()
	return name, t.readAttributeValue(), true
}

func (t *Tokenizer) readAttributeValue() string {
	if t.pos >= len(t.input) {
		return ""
	}
	quote := t.input[t.pos]
	if quote == '"' || quote == '\'' {
		t.pos++
		start := t.pos
		for t.pos < len(t.input) && t.input[t.pos] != quote {
			t.pos++
		}
		value := t.input[start:t.pos]
		if t.pos < len(t.input) {
			t.pos++ // closing quote
		}
		return gohtml.UnescapeString(value)
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return gohtml.UnescapeString(t.input[start:t.pos])
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	return t.textToken(t.input[start:t.pos])
}

func (t *Tokenizer) textToken(raw string) Token {
	// Inter-tag runs that are pure whitespace carry no content.
	if strings.TrimSpace(raw) == "" {
		return t.Next()
	}
	text := normalizeWhitespace(raw)
	text = gohtml.UnescapeString(text)
	return Token{Type: TokenText, Text: text}
}

// ReadRawText consumes input verbatim until the matching end tag, for
// raw-text elements (script, style) where '<' does not open a tag.
// The end tag itself is consumed. Returns the raw content.
func (t *Tokenizer) ReadRawText(tag string) string {
	needle := "</" + strings.ToLower(tag) + ">"
	lower := strings.ToLower(t.input)
	idx := strings.Index(lower[t.pos:], needle)
	if idx == -1 {
		content := t.input[t.pos:]
		t.pos = len(t.input)
		return content
	}
	content := t.input[t.pos : t.pos+idx]
	t.pos += idx + len(needle)
	return content
}

// normalizeWhitespace collapses whitespace runs to single spaces while
// keeping one boundary space on each side. Boundary spaces matter for
// inline flow ("</em> word" keeps its separating space).
func normalizeWhitespace(s string) string {
	hasLeading := len(s) > 0 && unicode.IsSpace(rune(s[0]))
	hasTrailing := len(s) > 0 && unicode.IsSpace(rune(s[len(s)-1]))

	fields := strings.Fields(s)
	if len(fields) == 0 {
		if hasLeading || hasTrailing {
			return " "
		}
		return ""
	}
	result := strings.Join(fields, " ")
	if hasLeading {
		result = " " + result
	}
	if hasTrailing {
		result = result + " "
	}
	return result
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func (t *Tokenizer) skipPast(target byte) {
	for t.pos < len(t.input) && t.input[t.pos] != target {
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++
	}
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttrNameChar(c byte) bool {
	return isTagNameChar(c) || c == ':' || c == '.'
}

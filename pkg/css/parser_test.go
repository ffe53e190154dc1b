package css

import "testing"

func TestParseStylesheet_SimpleRule(t *testing.T) {
	sheet := ParseStylesheet(`p { color: red; margin-top: 4px; }`)

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if rule.Selector.Raw != "p" {
		t.Errorf("expected selector 'p', got %q", rule.Selector.Raw)
	}
	if len(rule.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(rule.Declarations))
	}
	if rule.Declarations[0].Property != "color" || rule.Declarations[0].Value != "red" {
		t.Errorf("unexpected first declaration: %+v", rule.Declarations[0])
	}
}

func TestParseStylesheet_SelectorList(t *testing.T) {
	sheet := ParseStylesheet(`h1, h2, .big { font-size: 24px; }`)

	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules from selector list, got %d", len(sheet.Rules))
	}
	for i, want := range []string{"h1", "h2", ".big"} {
		if sheet.Rules[i].Selector.Raw != want {
			t.Errorf("rule %d: expected selector %q, got %q", i, want, sheet.Rules[i].Selector.Raw)
		}
		if sheet.Rules[i].Order != i {
			t.Errorf("rule %d: expected order %d, got %d", i, i, sheet.Rules[i].Order)
		}
	}
}

func TestParseStylesheet_DeclarationRecovery(t *testing.T) {
	// The malformed middle declaration is dropped; its neighbors survive.
	sheet := ParseStylesheet(`p { color: red; !!garbage!!; margin-top: 8px; }`)

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	decls := sheet.Rules[0].Declarations
	if len(decls) != 2 {
		t.Fatalf("expected 2 surviving declarations, got %d: %+v", len(decls), decls)
	}
	if decls[0].Property != "color" || decls[1].Property != "margin-top" {
		t.Errorf("wrong survivors: %+v", decls)
	}
}

func TestParseStylesheet_MissingValueDropped(t *testing.T) {
	sheet := ParseStylesheet(`p { color: ; margin-top: 8px }`)

	decls := sheet.Rules[0].Declarations
	if len(decls) != 1 || decls[0].Property != "margin-top" {
		t.Errorf("expected only margin-top to survive, got %+v", decls)
	}
}

func TestParseStylesheet_BadSelectorSkipsRule(t *testing.T) {
	sheet := ParseStylesheet(`
		p[data-x="1"] { color: red; }
		div { color: blue; }
	`)

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule (bad selector skipped), got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Selector.Raw != "div" {
		t.Errorf("expected surviving selector 'div', got %q", sheet.Rules[0].Selector.Raw)
	}
}

func TestParseStylesheet_AtRulesSkipped(t *testing.T) {
	sheet := ParseStylesheet(`
		@import url("other.css");
		@media screen { p { color: red; } }
		div { color: blue; }
	`)

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule after skipping at-rules, got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Selector.Raw != "div" {
		t.Errorf("expected 'div', got %q", sheet.Rules[0].Selector.Raw)
	}
}

func TestParseStylesheet_Comments(t *testing.T) {
	sheet := ParseStylesheet(`/* header */ p { /* inline */ color: red; }`)

	if len(sheet.Rules) != 1 || len(sheet.Rules[0].Declarations) != 1 {
		t.Fatalf("comments broke parsing: %+v", sheet.Rules)
	}
}

func TestParseStylesheet_UnterminatedBlock(t *testing.T) {
	sheet := ParseStylesheet(`p { color: red; margin-top: 2px`)

	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule from unterminated block, got %d", len(sheet.Rules))
	}
	if len(sheet.Rules[0].Declarations) != 2 {
		t.Errorf("expected 2 declarations, got %+v", sheet.Rules[0].Declarations)
	}
}

func TestParseStylesheet_EmptyAndGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "}}}{{{", "no braces at all", "{ color: red; }"} {
		sheet := ParseStylesheet(input)
		if sheet == nil {
			t.Fatalf("ParseStylesheet(%q) returned nil", input)
		}
	}
}

func TestParseInline(t *testing.T) {
	decls := ParseInline(`color: green; margin-top: 5px`)

	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if decls[0].Property != "color" || decls[0].Value != "green" {
		t.Errorf("unexpected declaration: %+v", decls[0])
	}
}

func TestExpandShorthand_Margin(t *testing.T) {
	tests := []struct {
		value                    string
		top, right, bottom, left string
	}{
		{"10px", "10px", "10px", "10px", "10px"},
		{"10px 20px", "10px", "20px", "10px", "20px"},
		{"10px 20px 30px", "10px", "20px", "30px", "20px"},
		{"10px 20px 30px 40px", "10px", "20px", "30px", "40px"},
	}
	for _, tt := range tests {
		decls := ParseInline("margin: " + tt.value)
		if len(decls) != 4 {
			t.Fatalf("margin %q: expected 4 longhands, got %+v", tt.value, decls)
		}
		got := map[string]string{}
		for _, d := range decls {
			got[d.Property] = d.Value
		}
		if got["margin-top"] != tt.top || got["margin-right"] != tt.right ||
			got["margin-bottom"] != tt.bottom || got["margin-left"] != tt.left {
			t.Errorf("margin %q: got %v", tt.value, got)
		}
	}
}

func TestExpandShorthand_Border(t *testing.T) {
	decls := ParseInline("border: 2px solid red")

	got := map[string]string{}
	for _, d := range decls {
		got[d.Property] = d.Value
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		if got["border-"+side+"-width"] != "2px" {
			t.Errorf("expected border-%s-width=2px, got %v", side, got)
		}
	}
	if got["border-style"] != "solid" {
		t.Errorf("expected border-style=solid, got %v", got)
	}
	if got["border-color"] != "red" {
		t.Errorf("expected border-color=red, got %v", got)
	}
}

func TestParseSelector_Compound(t *testing.T) {
	sel, ok := parseSelector("div.note#main")
	if !ok {
		t.Fatal("expected compound selector to parse")
	}
	if len(sel.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(sel.Parts))
	}
	p := sel.Parts[0]
	if p.Tag != "div" || p.Class != "note" || p.ID != "main" {
		t.Errorf("unexpected parts: %+v", p)
	}
}

func TestParseSelector_DescendantChain(t *testing.T) {
	sel, ok := parseSelector("  ul   li  a ")
	if !ok {
		t.Fatal("expected chain to parse")
	}
	if len(sel.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(sel.Parts))
	}
	if sel.Raw != "ul li a" {
		t.Errorf("expected normalized raw 'ul li a', got %q", sel.Raw)
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		selector string
		want     Specificity
	}{
		{"*", Specificity{0, 0, 0}},
		{"p", Specificity{0, 0, 1}},
		{".note", Specificity{0, 1, 0}},
		{"#main", Specificity{1, 0, 0}},
		{"div.note", Specificity{0, 1, 1}},
		{"ul li a", Specificity{0, 0, 3}},
		{"#main .note p", Specificity{1, 1, 1}},
	}
	for _, tt := range tests {
		sel, ok := parseSelector(tt.selector)
		if !ok {
			t.Fatalf("selector %q failed to parse", tt.selector)
		}
		if got := sel.Specificity(); got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.selector, tt.want, got)
		}
	}
}

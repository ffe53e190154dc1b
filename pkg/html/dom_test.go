package html

import "testing"

func TestNode_AddChildSetsParent(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("p")
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("expected parent back-reference to be set")
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Error("expected child in parent's children")
	}
}

func TestNode_AppendTextDropsEmpty(t *testing.T) {
	n := NewElement("p")
	n.AppendText("")
	if len(n.Children) != 0 {
		t.Error("empty text must not create a node")
	}
	n.AppendText("x")
	if len(n.Children) != 1 || n.Children[0].Type != TextNode {
		t.Error("expected a single text child")
	}
}

func TestNode_ClassHelpers(t *testing.T) {
	n := NewElement("div")
	n.Attributes["class"] = "  a  b\tc "
	classes := n.Classes()
	if len(classes) != 3 {
		t.Fatalf("expected 3 classes, got %v", classes)
	}
	if !n.HasClass("b") {
		t.Error("expected HasClass(b)")
	}
	if n.HasClass("d") {
		t.Error("did not expect HasClass(d)")
	}
}

func TestNode_Serialize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaping", "<p>a &amp; b</p>", `<html><body><p>a &amp; b</p></body></html>`},
		{"sorted attributes", `<div id="x" class="y"></div>`, `<html><body><div class="y" id="x"></div></body></html>`},
		{"void element", "<p>a<br>b</p>", `<html><body><p>a<br>b</p></body></html>`},
		{"comment", "<p><!--c--></p>", `<html><body><p><!--c--></p></body></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.in).Serialize(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNode_TextContent(t *testing.T) {
	root := Parse("<div>a<p>b<em>c</em></p>d</div>")
	div := root.FindFirst("div")
	if got := div.TextContent(); got != "abcd" {
		t.Errorf("expected concatenated text 'abcd', got %q", got)
	}
}

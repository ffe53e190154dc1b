package layout

// HitTest returns the innermost box whose border box contains the point,
// or nil. When siblings overlap, the later one in document order wins.
func HitTest(root *Box, x, y float64) *Box {
	if root == nil {
		return nil
	}
	var hit *Box
	if root.BorderRect().Contains(x, y) {
		hit = root
	}
	for _, child := range root.Children {
		if h := HitTest(child, x, y); h != nil {
			hit = h
		}
	}
	return hit
}

// LinkTarget returns the href of the nearest enclosing anchor of the hit
// box, walking first the box's own DOM node then the layout ancestors of
// anonymous boxes. ok=false means the point is not inside a link.
func LinkTarget(box *Box) (string, bool) {
	for b := box; b != nil; b = b.Parent {
		if b.Styled == nil {
			continue // anonymous: keep walking up
		}
		node := b.Styled.Node
		if node.TagName == "a" {
			href, ok := node.GetAttribute("href")
			return href, ok
		}
		if a := node.Ancestor("a"); a != nil {
			href, ok := a.GetAttribute("href")
			return href, ok
		}
		return "", false
	}
	return "", false
}

package filesystem

import (
	"strings"

	"github.com/beevik/etree"

	"componentdiff/internal/domain"
)

// toNode copies an etree element into an owned domain tree.
// Leaf text is the concatenated character data; comments are skipped.
func toNode(el *etree.Element) *domain.Node {
	n := &domain.Node{Name: el.Tag}

	for _, a := range el.Attr {
		n.Attrs = append(n.Attrs, domain.Attr{Key: a.FullKey(), Value: a.Value})
	}

	children := el.ChildElements()
	if len(children) == 0 {
		n.Text = charData(el)
		return n
	}

	n.Children = make([]*domain.Node, len(children))
	for i, c := range children {
		n.Children[i] = toNode(c)
	}
	return n
}

func charData(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}

// fromNode builds a fresh etree element, so the result never aliases n
func fromNode(n *domain.Node) *etree.Element {
	el := etree.NewElement(n.Name)
	for _, a := range n.Attrs {
		el.CreateAttr(a.Key, a.Value)
	}

	if n.IsLeaf() {
		if n.Text != "" {
			el.SetText(n.Text)
		}
		return el
	}

	for _, c := range n.Children {
		el.AddChild(fromNode(c))
	}
	return el
}

// findFirst returns the first element named tag in pre-order, el included
func findFirst(el *etree.Element, tag string) *etree.Element {
	if el.Tag == tag {
		return el
	}
	for _, c := range el.ChildElements() {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every element named tag in document order, el included
func findAll(el *etree.Element, tag string) []*etree.Element {
	var result []*etree.Element
	if el.Tag == tag {
		result = append(result, el)
	}
	for _, c := range el.ChildElements() {
		result = append(result, findAll(c, tag)...)
	}
	return result
}

package domain

// Attr is an attribute carried on a Node. Key keeps any namespace prefix (e.g. "xsi:type").
type Attr struct {
	Key   string
	Value string
}

// Node represents one element of a component document.
// A parent owns its children outright; well-formed documents cannot form cycles.
type Node struct {
	Name     string
	Text     string // Raw character data; only meaningful for leaves
	Attrs    []Attr
	Children []*Node
}

// NewNode creates a node with the given children
func NewNode(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// NewLeaf creates a childless node holding text
func NewLeaf(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// IsLeaf reports whether the node has no child elements
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the first direct child with the given name, or nil
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Lookup follows a "/"-joined path of direct children below n.
// The first matching child is taken at every step.
func (n *Node) Lookup(path string) *Node {
	cur := n
	for _, name := range splitPath(path) {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Clone returns a deep copy of the subtree rooted at n
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Find returns the first node named name in depth-first pre-order, n included
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node named name in document order, n included.
// Matches nested inside a match are returned as well.
func (n *Node) FindAll(name string) []*Node {
	var result []*Node
	n.findAllRecursive(name, &result)
	return result
}

func (n *Node) findAllRecursive(name string, result *[]*Node) {
	if n == nil {
		return
	}
	if n.Name == name {
		*result = append(*result, n)
	}
	for _, c := range n.Children {
		c.findAllRecursive(name, result)
	}
}

// ensurePath returns the node at path below n, creating missing elements on the way
func (n *Node) ensurePath(path string) *Node {
	cur := n
	for _, name := range splitPath(path) {
		next := cur.Child(name)
		if next == nil {
			next = &Node{Name: name}
			cur.Children = append(cur.Children, next)
		}
		cur = next
	}
	return cur
}

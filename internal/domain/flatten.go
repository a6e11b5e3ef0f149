package domain

import "strings"

// PathSeparator joins element names in a leaf path
const PathSeparator = "/"

// FlattenedMap maps leaf paths to raw leaf text.
// Keys are unique; insertion order is kept for display only.
type FlattenedMap struct {
	paths  []string
	values map[string]string
}

// NewFlattenedMap builds a map from alternating path/value pairs (handy in tests)
func NewFlattenedMap(pairs ...string) FlattenedMap {
	var m FlattenedMap
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set stores value at path. An existing path keeps its position and takes the new value.
func (m *FlattenedMap) Set(path, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[path]; !ok {
		m.paths = append(m.paths, path)
	}
	m.values[path] = value
}

// Get returns the value stored at path
func (m FlattenedMap) Get(path string) (string, bool) {
	v, ok := m.values[path]
	return v, ok
}

// Has reports whether path is present
func (m FlattenedMap) Has(path string) bool {
	_, ok := m.values[path]
	return ok
}

// Len returns the number of leaves
func (m FlattenedMap) Len() int {
	return len(m.paths)
}

// Paths returns leaf paths in insertion order
func (m FlattenedMap) Paths() []string {
	return append([]string(nil), m.paths...)
}

// Equal reports whether both maps hold the same path/value pairs, ignoring order
func (m FlattenedMap) Equal(other FlattenedMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for path, v := range m.values {
		if ov, ok := other.values[path]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Flatten turns the subtree rooted at root into a FlattenedMap.
// Only childless elements become keys; the root name is the first path segment.
func Flatten(root *Node) FlattenedMap {
	var m FlattenedMap
	if root == nil {
		return m
	}
	flattenRecursive(root, "", &m)
	return m
}

func flattenRecursive(n *Node, parent string, m *FlattenedMap) {
	path := n.Name
	if parent != "" {
		path = parent + PathSeparator + n.Name
	}

	if n.IsLeaf() {
		m.Set(path, n.Text)
		return
	}
	for _, c := range n.Children {
		flattenRecursive(c, path, m)
	}
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, PathSeparator) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

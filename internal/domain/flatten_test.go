package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func sampleRates() *Node {
	return NewNode("rates",
		NewLeaf("feed", "1000"),
		NewLeaf("plunge", "250"),
		NewNode("advanced",
			NewLeaf("ramp", "3"),
			NewNode("lead",
				NewLeaf("in", "0.5"),
				NewLeaf("out", ""),
			),
		),
	)
}

func TestFlatten_LeafPaths(t *testing.T) {
	m := Flatten(sampleRates())

	want := []string{
		"rates/feed",
		"rates/plunge",
		"rates/advanced/ramp",
		"rates/advanced/lead/in",
		"rates/advanced/lead/out",
	}
	if diff := cmp.Diff(want, m.Paths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	v, ok := m.Get("rates/advanced/lead/out")
	assert.True(t, ok)
	assert.Equal(t, "", v, "absent text flattens to the empty string")

	assert.False(t, m.Has("rates/advanced"), "non-leaf elements are never keys")
}

func TestFlatten_Deterministic(t *testing.T) {
	root := sampleRates()
	first := Flatten(root)
	second := Flatten(root)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Paths(), second.Paths())
}

func TestFlatten_EdgeCases(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want FlattenedMap
	}{
		{
			name: "nil root",
			root: nil,
			want: FlattenedMap{},
		},
		{
			name: "childless root is its own leaf",
			root: NewLeaf("tool", "02"),
			want: NewFlattenedMap("tool", "02"),
		},
		{
			name: "duplicate siblings keep the last value",
			root: NewNode("tool", NewLeaf("external", "01"), NewLeaf("external", "03")),
			want: NewFlattenedMap("tool/external", "03"),
		},
		{
			name: "leaf text is not trimmed",
			root: NewNode("pattern", NewLeaf("type", "  ConstantCusp ")),
			want: NewFlattenedMap("pattern/type", "  ConstantCusp "),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.root)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want.Paths(), got.Paths())
			}
		})
	}
}

func TestNode_CloneIsDeep(t *testing.T) {
	orig := sampleRates()
	orig.Attrs = []Attr{{Key: "id", Value: "r1"}}

	clone := orig.Clone()
	clone.Children[0].Text = "1"
	clone.Attrs[0].Value = "changed"
	clone.Lookup("advanced/lead/in").Text = "9"

	assert.Equal(t, "1000", orig.Child("feed").Text)
	assert.Equal(t, "r1", orig.Attrs[0].Value)
	assert.Equal(t, "0.5", orig.Lookup("advanced/lead/in").Text)
}

func TestNode_FindAllDocumentOrder(t *testing.T) {
	doc := NewNode("script",
		NewNode("op1", NewNode("rates", NewLeaf("feed", "1"))),
		NewNode("op2", NewNode("rates", NewLeaf("feed", "2"))),
	)

	all := doc.FindAll("rates")
	assert.Len(t, all, 2)
	assert.Equal(t, "1", all[0].Child("feed").Text)
	assert.Same(t, all[0], doc.Find("rates"), "Find returns the first instance in document order")
	assert.Nil(t, doc.Find("wing"))
}

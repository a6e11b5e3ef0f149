package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoInstances is returned when a default is requested for a type with no observed instances
var ErrNoInstances = errors.New("no component instances")

// Rule selects how a default field value is derived
type Rule string

const (
	RuleMedian  Rule = "median"  // median of the values that parse as numbers
	RuleMode    Rule = "mode"    // most frequent non-blank value
	RuleLiteral Rule = "literal" // fixed policy constant
)

// IsValid reports whether r is a supported rule
func (r Rule) IsValid() bool {
	switch r {
	case RuleMedian, RuleMode, RuleLiteral:
		return true
	}
	return false
}

// FieldRule derives one leaf of a synthesized default.
// Path is relative to the component root, e.g. "feed" or "wing_tool/external".
type FieldRule struct {
	Path    string
	Rule    Rule
	Literal string
}

// MedianOf is a FieldRule shorthand
func MedianOf(path string) FieldRule { return FieldRule{Path: path, Rule: RuleMedian} }

// ModeOf is a FieldRule shorthand
func ModeOf(path string) FieldRule { return FieldRule{Path: path, Rule: RuleMode} }

// Fixed is a FieldRule shorthand for a literal
func Fixed(path, value string) FieldRule {
	return FieldRule{Path: path, Rule: RuleLiteral, Literal: value}
}

// Strategy is the rule table of one component type. Fields are emitted in order.
type Strategy struct {
	Type   ComponentType
	Fields []FieldRule
}

// Validate checks that every field has a path and a supported rule
func (s Strategy) Validate() error {
	if !s.Type.IsValid() {
		return fmt.Errorf("invalid component type %q", s.Type)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("strategy %s has no fields", s.Type)
	}
	for i, f := range s.Fields {
		if len(splitPath(f.Path)) == 0 {
			return fmt.Errorf("strategy %s: field %d has no path", s.Type, i)
		}
		if !f.Rule.IsValid() {
			return fmt.Errorf("strategy %s: field %s has unknown rule %q", s.Type, f.Path, f.Rule)
		}
	}
	return nil
}

// apply builds the default instance from the observed instances
func (s Strategy) apply(instances []*Node) *Node {
	root := &Node{Name: string(s.Type)}
	for _, f := range s.Fields {
		leaf := root.ensurePath(f.Path)
		switch f.Rule {
		case RuleMedian:
			leaf.Text = FormatNumber(Median(numericValues(instances, f.Path)))
		case RuleMode:
			leaf.Text, _ = Mode(textValues(instances, f.Path))
		case RuleLiteral:
			leaf.Text = f.Literal
		}
	}
	return root
}

// BuiltinStrategies are the default-generation policies for CAM script components.
// Types without an entry (feed_rate_advanced, mach_surf, link) use the generic fallback.
var BuiltinStrategies = []Strategy{
	{
		Type: TypeRates,
		Fields: []FieldRule{
			MedianOf("feed"),
			MedianOf("plunge"),
			MedianOf("retract"),
			Fixed("up_percentage", "100.0"),
			Fixed("down_percentage", "90.0"),
		},
	},
	{
		Type: TypeWing,
		Fields: []FieldRule{
			MedianOf("width"),
			MedianOf("inside_offset"),
			Fixed("tolerance", "0.01"),
			Fixed("silhouette_tool_diameter", "1.4"),
			Fixed("wing_tool/external", "02"),
			Fixed("main_mesh", "coping"),
			Fixed("pins_mesh", "pins"),
			Fixed("wings_mesh_name", "New_wings_cavity"),
			Fixed("bottom_external", "true"),
		},
	},
	{
		Type: TypeTool,
		Fields: []FieldRule{
			ModeOf("external"),
		},
	},
	{
		Type: TypeGougeCheck,
		Fields: []FieldRule{
			Fixed("status", "true"),
			Fixed("check_flute", "false"),
			Fixed("check_shaft", "true"),
			Fixed("check_surf", "pins"),
			Fixed("strategy", "retract_along_tool_axis"),
			Fixed("check_between_points", "true"),
			Fixed("check_links_collide", "true"),
			Fixed("tolerance", "0.01"),
			Fixed("thickness", "0"),
			Fixed("clearance_shaft", "0"),
			Fixed("clearance_arbor", "0"),
			Fixed("clearance_holder", "0"),
		},
	},
	{
		Type: TypePattern,
		Fields: []FieldRule{
			Fixed("type", "ConstantCusp"),
			MedianOf("stepover"),
			Fixed("cut_order", "standard"),
			Fixed("cut_method", "zigzag"),
		},
	},
}

// Registry maps component types to synthesis strategies
type Registry struct {
	strategies map[ComponentType]Strategy
}

// NewRegistry creates a registry holding the given strategies
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[ComponentType]Strategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.Type] = s
	}
	return r
}

// DefaultRegistry returns a registry preloaded with BuiltinStrategies
func DefaultRegistry() *Registry {
	return NewRegistry(BuiltinStrategies...)
}

// Register adds or replaces the strategy for s.Type
func (r *Registry) Register(s Strategy) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.strategies[s.Type] = s
	return nil
}

// Lookup returns the strategy registered for t
func (r *Registry) Lookup(t ComponentType) (Strategy, bool) {
	s, ok := r.strategies[t]
	return s, ok
}

// Types returns the registered types in name order
func (r *Registry) Types() []ComponentType {
	types := make([]ComponentType, 0, len(r.strategies))
	for t := range r.strategies {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Synthesize builds one default instance of t from observed instances.
//
// Registered types follow their rule table. Anything else falls back to a deep
// copy of the first instance, which is only a crude baseline.
func (r *Registry) Synthesize(t ComponentType, instances []*Node) (*Node, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("%s: %w", t, ErrNoInstances)
	}

	if s, ok := r.strategies[t]; ok {
		return s.apply(instances), nil
	}
	return instances[0].Clone(), nil
}

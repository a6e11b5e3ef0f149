package domain

import "sort"

// DifferenceKind classifies one leaf path of a comparison
type DifferenceKind int

const (
	Identical DifferenceKind = iota
	Different
	Missing
	Extra
)

// String returns the kind label
func (k DifferenceKind) String() string {
	switch k {
	case Identical:
		return "Identical"
	case Different:
		return "Different"
	case Missing:
		return "Missing"
	case Extra:
		return "Extra"
	default:
		return "Unknown"
	}
}

// ParseDifferenceKind parses a kind label (case-sensitive, as produced by String)
func ParseDifferenceKind(s string) (DifferenceKind, bool) {
	for _, k := range []DifferenceKind{Identical, Different, Missing, Extra} {
		if k.String() == s {
			return k, true
		}
	}
	return Identical, false
}

// Placeholders stored in place of a value that does not exist on one side
const (
	MissingPlaceholder      = "(missing)"
	NotInDefaultPlaceholder = "(not in default)"
)

// Difference describes one leaf path present in the default and/or the actual instance
type Difference struct {
	Path         string
	DefaultValue string
	ActualValue  string
	Kind         DifferenceKind
}

// FindDifferences classifies every leaf path of expected and actual.
// The result is sorted by path using plain string ordering.
func FindDifferences(expected, actual FlattenedMap) []Difference {
	diffs := make([]Difference, 0, expected.Len()+actual.Len())

	for _, path := range expected.paths {
		dv := expected.values[path]
		av, ok := actual.Get(path)
		switch {
		case !ok:
			diffs = append(diffs, Difference{Path: path, DefaultValue: dv, ActualValue: MissingPlaceholder, Kind: Missing})
		case ValuesSimilar(dv, av):
			diffs = append(diffs, Difference{Path: path, DefaultValue: dv, ActualValue: av, Kind: Identical})
		default:
			diffs = append(diffs, Difference{Path: path, DefaultValue: dv, ActualValue: av, Kind: Different})
		}
	}

	for _, path := range actual.paths {
		if !expected.Has(path) {
			diffs = append(diffs, Difference{
				Path:         path,
				DefaultValue: NotInDefaultPlaceholder,
				ActualValue:  actual.values[path],
				Kind:         Extra,
			})
		}
	}

	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Path < diffs[j].Path
	})

	return diffs
}

// DifferenceSummary counts differences per kind
type DifferenceSummary struct {
	Identical int
	Different int
	Missing   int
	Extra     int
}

// Deviations returns the number of non-identical paths
func (s DifferenceSummary) Deviations() int {
	return s.Different + s.Missing + s.Extra
}

// Summarize counts the differences per kind
func Summarize(diffs []Difference) DifferenceSummary {
	var s DifferenceSummary
	for _, d := range diffs {
		switch d.Kind {
		case Identical:
			s.Identical++
		case Different:
			s.Different++
		case Missing:
			s.Missing++
		case Extra:
			s.Extra++
		}
	}
	return s
}

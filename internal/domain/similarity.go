package domain

import (
	"math"
	"strconv"
	"strings"
)

// NumericTolerance is the relative difference below which two numbers count as similar
const NumericTolerance = 0.05

// ValuesSimilar is the single predicate shared by scoring and classification.
//
// Empty values only match empty values. Two numbers match when their relative
// difference against the larger magnitude is below NumericTolerance. Anything
// else is compared as case-insensitive text.
func ValuesSimilar(a, b string) bool {
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}

	if x, ok := parseNumber(a); ok {
		if y, ok := parseNumber(b); ok {
			return numbersSimilar(x, y)
		}
	}

	return strings.EqualFold(a, b)
}

func numbersSimilar(x, y float64) bool {
	if x == 0 && y == 0 {
		return true
	}
	denom := math.Max(math.Abs(x), math.Abs(y))
	// NaN fails this comparison, so it never matches
	return math.Abs(x-y)/denom < NumericTolerance
}

// parseNumber accepts surrounding whitespace, as XML leaf text often carries it
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Similarity scores how close actual is to expected, in percent.
//
// Every expected leaf counts as one comparison and scores when actual holds a
// similar value at the same path. Leaves only present in actual add comparisons
// without ever scoring. The result is therefore asymmetric: it answers "how close
// is this instance to the default", not a set similarity.
func Similarity(expected, actual FlattenedMap) float64 {
	if expected.Len() == 0 && actual.Len() == 0 {
		return 100.0
	}
	if expected.Len() == 0 || actual.Len() == 0 {
		return 0.0
	}

	matches := 0
	comparisons := 0

	for _, path := range expected.paths {
		comparisons++
		if av, ok := actual.Get(path); ok && ValuesSimilar(expected.values[path], av) {
			matches++
		}
	}

	// Extra leaves are a pure penalty
	for _, path := range actual.paths {
		if !expected.Has(path) {
			comparisons++
		}
	}

	return float64(matches) / float64(comparisons) * 100.0
}

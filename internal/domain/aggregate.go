package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Median returns the median of values, or 0 for no values.
// values is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// Mode returns the most frequent value. Ties go to the value whose first
// occurrence comes first in values. ok is false when values is empty.
func Mode(values []string) (mode string, ok bool) {
	counts := make(map[string]int, len(values))
	var order []string

	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := 0
	for _, v := range order {
		if counts[v] > best {
			mode, best = v, counts[v]
		}
	}
	return mode, best > 0
}

// FormatNumber renders a number with the shortest representation that round-trips
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numericValues reads path from every instance and keeps the values that parse as numbers
func numericValues(instances []*Node, path string) []float64 {
	var values []float64
	for _, inst := range instances {
		n := inst.Lookup(path)
		if n == nil {
			continue
		}
		if v, ok := parseNumber(n.Text); ok {
			values = append(values, v)
		}
	}
	return values
}

// textValues reads path from every instance and keeps the non-blank values
func textValues(instances []*Node, path string) []string {
	var values []string
	for _, inst := range instances {
		n := inst.Lookup(path)
		if n == nil || strings.TrimSpace(n.Text) == "" {
			continue
		}
		values = append(values, n.Text)
	}
	return values
}

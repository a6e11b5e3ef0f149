package domain

import "sort"

// FileInstances holds every instance of a component type found in one document
type FileInstances struct {
	Name      string // File name without extension
	Path      string
	Instances []*Node
}

// ElementCount is how often a direct-child element name occurs across instances
type ElementCount struct {
	Name  string
	Count int
}

// Analysis describes how a component type is used across a corpus
type Analysis struct {
	Type             ComponentType
	Files            []FileInstances
	ElementFrequency []ElementCount
	Skipped          []Diagnostic
}

// InstanceCount returns the number of instances over all files
func (a *Analysis) InstanceCount() int {
	total := 0
	for _, f := range a.Files {
		total += len(f.Instances)
	}
	return total
}

// AllInstances returns every instance in file order
func (a *Analysis) AllInstances() []*Node {
	var all []*Node
	for _, f := range a.Files {
		all = append(all, f.Instances...)
	}
	return all
}

// ElementFrequency counts direct-child element names over all instances.
// Sorted by count descending; equal counts keep first-appearance order.
func ElementFrequency(files []FileInstances) []ElementCount {
	index := make(map[string]int)
	var counts []ElementCount

	for _, f := range files {
		for _, inst := range f.Instances {
			for _, c := range inst.Children {
				i, ok := index[c.Name]
				if !ok {
					i = len(counts)
					index[c.Name] = i
					counts = append(counts, ElementCount{Name: c.Name})
				}
				counts[i].Count++
			}
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

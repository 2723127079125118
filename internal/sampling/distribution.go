package sampling

import (
    "sort"

    "sensorprep/internal/data"
)

type ClassCount struct {
    Class   int     `json:"class"`
    Name    string  `json:"name"`
    Count   int     `json:"count"`
    Percent float64 `json:"percent"`
}

// Distribution is the per-class frequency of a label vector, ordered by class.
type Distribution struct {
    Total   int          `json:"total"`
    Classes []ClassCount `json:"classes"`
}

func Count(labels []int) Distribution {
    counts := map[int]int{}
    for _, l := range labels {
        counts[l]++
    }
    d := Distribution{Total: len(labels), Classes: make([]ClassCount, 0, len(counts))}
    for _, c := range sortedKeys(counts) {
        d.Classes = append(d.Classes, ClassCount{
            Class:   c,
            Name:    data.ClassName(c),
            Count:   counts[c],
            Percent: float64(counts[c]) / float64(len(labels)) * 100,
        })
    }
    return d
}

// Get returns the count for class, 0 when absent.
func (d Distribution) Get(class int) int {
    for _, c := range d.Classes {
        if c.Class == class {
            return c.Count
        }
    }
    return 0
}

func (d Distribution) Labels() []int {
    out := make([]int, len(d.Classes))
    for i, c := range d.Classes {
        out[i] = c.Class
    }
    return out
}

// groupByClass returns the indices of each class, in encounter order.
func groupByClass(labels []int) map[int][]int {
    groups := map[int][]int{}
    for i, l := range labels {
        groups[l] = append(groups[l], i)
    }
    return groups
}

func sortedKeys[V any](m map[int]V) []int {
    keys := make([]int, 0, len(m))
    for k := range m {
        keys = append(keys, k)
    }
    sort.Ints(keys)
    return keys
}

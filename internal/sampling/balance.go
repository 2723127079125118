package sampling

import (
    "math/rand"
    "sort"
)

// TargetSize is the class size under-sampling aims for when none is given:
// the second largest class, or the only class when there is just one.
func TargetSize(d Distribution) int {
    if len(d.Classes) == 0 {
        return 0
    }
    counts := make([]int, len(d.Classes))
    for i, c := range d.Classes {
        counts[i] = c.Count
    }
    sort.Ints(counts)
    if len(counts) == 1 {
        return counts[0]
    }
    return counts[len(counts)-2]
}

// Undersample picks at most target indices per class, without replacement,
// and returns all picked indices shuffled. target <= 0 means TargetSize.
func Undersample(labels []int, target int, rng *rand.Rand) []int {
    if target <= 0 {
        target = TargetSize(Count(labels))
    }
    groups := groupByClass(labels)
    out := make([]int, 0, len(labels))
    for _, c := range sortedKeys(groups) {
        idx := groups[c]
        if len(idx) <= target {
            out = append(out, idx...)
            continue
        }
        for _, k := range rng.Perm(len(idx))[:target] {
            out = append(out, idx[k])
        }
    }
    rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
    return out
}

// Projected is the distribution Undersample would produce for d, without
// drawing any samples.
func Projected(d Distribution, target int) Distribution {
    if target <= 0 {
        target = TargetSize(d)
    }
    out := Distribution{Classes: make([]ClassCount, len(d.Classes))}
    for i, c := range d.Classes {
        c.Count = min(c.Count, target)
        out.Classes[i] = c
        out.Total += c.Count
    }
    for i := range out.Classes {
        out.Classes[i].Percent = float64(out.Classes[i].Count) / float64(out.Total) * 100
    }
    return out
}

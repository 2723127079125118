package sampling

// BalancedWeights weighs each class by n / (classes * count), so rare classes
// count for more in the loss.
func BalancedWeights(labels []int) map[int]float64 {
    d := Count(labels)
    out := make(map[int]float64, len(d.Classes))
    k := float64(len(d.Classes))
    for _, c := range d.Classes {
        out[c.Class] = float64(d.Total) / (k * float64(c.Count))
    }
    return out
}

// WeightVector orders weights by classes, 0 for classes without a weight.
func WeightVector(weights map[int]float64, classes []int) []float64 {
    out := make([]float64, len(classes))
    for i, c := range classes {
        out[i] = weights[c]
    }
    return out
}

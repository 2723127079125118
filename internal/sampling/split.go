package sampling

import (
    "errors"
    "math"
    "math/rand"
)

const (
    DefaultTestSize = 0.2
    DefaultSeed     = 42
)

var ErrBadTestSize = errors.New("test size deve estar em (0, 1)")

// StratifiedSplit splits every class on its own so train and test keep the
// class proportions. Each class contributes ceil(testSize*n) samples to test,
// but always leaves at least one in train. Results are grouped class by class
// in ascending class order.
func StratifiedSplit(labels []int, testSize float64, rng *rand.Rand) (train, test []int, err error) {
    if !(testSize > 0 && testSize < 1) {
        return nil, nil, ErrBadTestSize
    }
    groups := groupByClass(labels)
    train = make([]int, 0, len(labels))
    test = make([]int, 0, int(math.Ceil(testSize*float64(len(labels))))+len(groups))
    for _, c := range sortedKeys(groups) {
        idx := append([]int(nil), groups[c]...)
        rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
        nTest := TestCount(len(idx), testSize)
        test = append(test, idx[:nTest]...)
        train = append(train, idx[nTest:]...)
    }
    return train, test, nil
}

// TestCount is how many of n samples of a class go to the test split.
func TestCount(n int, testSize float64) int {
    if n <= 1 {
        return 0
    }
    k := int(math.Ceil(testSize * float64(n)))
    if k >= n {
        k = n - 1
    }
    return k
}

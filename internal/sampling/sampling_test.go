package sampling

import (
    "math/rand"
    "sort"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

// 0:100, 1:40, 2:25, 3:10
func skewed() []int {
    var y []int
    for c, n := range []int{100, 40, 25, 10} {
        for i := 0; i < n; i++ {
            y = append(y, c)
        }
    }
    rand.New(rand.NewSource(1)).Shuffle(len(y), func(i, j int) { y[i], y[j] = y[j], y[i] })
    return y
}

func TestCountDistribution(t *testing.T) {
    d := Count([]int{3, 1, 1, 0, 3, 3})
    assert.Equal(t, 6, d.Total)
    assert.Equal(t, []int{0, 1, 3}, d.Labels())
    assert.Equal(t, 3, d.Get(3))
    assert.Equal(t, 0, d.Get(2))
    assert.Equal(t, "Right hand", d.Classes[2].Name)
    assert.InDelta(t, 50.0, d.Classes[2].Percent, 1e-9)

    empty := Count(nil)
    assert.Equal(t, 0, empty.Total)
    assert.Empty(t, empty.Classes)
}

func TestTargetSize(t *testing.T) {
    assert.Equal(t, 40, TargetSize(Count(skewed())))
    assert.Equal(t, 5, TargetSize(Count([]int{2, 2, 2, 2, 2})))
    assert.Equal(t, 0, TargetSize(Count(nil)))
    assert.Equal(t, 3, TargetSize(Count([]int{0, 0, 0, 1, 1, 1})))
}

func TestUndersample(t *testing.T) {
    y := skewed()
    idx := Undersample(y, 0, rand.New(rand.NewSource(7)))
    require.Len(t, idx, 40+40+25+10)

    seen := map[int]bool{}
    picked := make([]int, len(idx))
    for i, j := range idx {
        assert.False(t, seen[j], "index %d picked twice", j)
        seen[j] = true
        picked[i] = y[j]
    }
    d := Count(picked)
    assert.Equal(t, 40, d.Get(0))
    assert.Equal(t, 40, d.Get(1))
    assert.Equal(t, 25, d.Get(2))
    assert.Equal(t, 10, d.Get(3))
    assert.False(t, sort.IntsAreSorted(idx), "output should be shuffled")
}

func TestUndersample_ExplicitTarget(t *testing.T) {
    y := skewed()
    idx := Undersample(y, 20, rand.New(rand.NewSource(7)))
    picked := make([]int, len(idx))
    for i, j := range idx {
        picked[i] = y[j]
    }
    d := Count(picked)
    assert.Equal(t, []int{20, 20, 20, 10}, []int{d.Get(0), d.Get(1), d.Get(2), d.Get(3)})
}

func TestUndersample_Deterministic(t *testing.T) {
    y := skewed()
    a := Undersample(y, 0, rand.New(rand.NewSource(42)))
    b := Undersample(y, 0, rand.New(rand.NewSource(42)))
    assert.Equal(t, a, b)
}

func TestStratifiedSplit(t *testing.T) {
    y := skewed()
    train, test, err := StratifiedSplit(y, 0.2, rand.New(rand.NewSource(DefaultSeed)))
    require.NoError(t, err)
    assert.Len(t, train, len(y)-len(test))

    all := append(append([]int(nil), train...), test...)
    sort.Ints(all)
    for i := range all {
        require.Equal(t, i, all[i], "every index lands in exactly one split")
    }

    testLabels := make([]int, len(test))
    for i, j := range test {
        testLabels[i] = y[j]
    }
    d := Count(testLabels)
    assert.Equal(t, 20, d.Get(0))
    assert.Equal(t, 8, d.Get(1))
    assert.Equal(t, 5, d.Get(2))
    assert.Equal(t, 2, d.Get(3))
    assert.True(t, sort.IntsAreSorted(testLabels), "splits are grouped class by class")
}

func TestStratifiedSplit_Edges(t *testing.T) {
    rng := rand.New(rand.NewSource(1))
    _, _, err := StratifiedSplit([]int{0, 1}, 0, rng)
    assert.ErrorIs(t, err, ErrBadTestSize)
    _, _, err = StratifiedSplit([]int{0, 1}, 1, rng)
    assert.ErrorIs(t, err, ErrBadTestSize)

    train, test, err := StratifiedSplit([]int{0, 1, 1}, 0.5, rng)
    require.NoError(t, err)
    assert.Equal(t, []int{0}, train[:1], "singleton class stays in train")
    assert.Len(t, test, 1)
    assert.Len(t, train, 2)
}

func TestTestCount(t *testing.T) {
    assert.Equal(t, 0, TestCount(0, 0.2))
    assert.Equal(t, 0, TestCount(1, 0.2))
    assert.Equal(t, 1, TestCount(2, 0.2))
    assert.Equal(t, 1, TestCount(2, 0.9))
    assert.Equal(t, 2, TestCount(10, 0.2))
    assert.Equal(t, 3, TestCount(11, 0.2))
}

func TestBalancedWeights(t *testing.T) {
    w := BalancedWeights([]int{0, 0, 0, 0, 1, 1, 2, 2})
    assert.InDelta(t, 8.0/(3*4), w[0], 1e-12)
    assert.InDelta(t, 8.0/(3*2), w[1], 1e-12)
    assert.InDelta(t, 8.0/(3*2), w[2], 1e-12)

    uniform := BalancedWeights([]int{0, 1, 2, 3})
    for c := 0; c < 4; c++ {
        assert.InDelta(t, 1.0, uniform[c], 1e-12)
    }
    assert.Equal(t, []float64{w[0], 0, w[2]}, WeightVector(w, []int{0, 5, 2}))
}

func TestProjected(t *testing.T) {
    y := skewed()
    d := Projected(Count(y), 0)
    assert.Equal(t, 115, d.Total)
    assert.Equal(t, []int{40, 40, 25, 10}, []int{d.Get(0), d.Get(1), d.Get(2), d.Get(3)})

    idx := Undersample(y, 0, rand.New(rand.NewSource(3)))
    picked := make([]int, len(idx))
    for i, j := range idx {
        picked[i] = y[j]
    }
    assert.Equal(t, Count(picked), d, "projection matches an actual draw")

    assert.Equal(t, 0, Projected(Count(nil), 0).Total)
}

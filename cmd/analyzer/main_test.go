package main

import (
    "encoding/csv"
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "sensorprep/internal/data"
)

func TestParseSizes(t *testing.T) {
    got, err := parseSizes("5, 10,,20")
    require.NoError(t, err)
    assert.Equal(t, []int{5, 10, 20}, got)

    for _, bad := range []string{"", "a", "3,0", " , "} {
        _, err := parseSizes(bad)
        assert.Error(t, err, bad)
    }
}

func TestSweepAndCSV(t *testing.T) {
    X := make([][]float64, 100)
    y := make([]int, 100)
    for i := range X {
        X[i] = []float64{float64(i)}
        if i >= 70 {
            y[i] = data.RightHand
        }
    }
    ds := &data.Dataset{Features: X, Labels: y}

    small, err := sweep(ds, 10, 1, 0, false)
    require.NoError(t, err)
    assert.Equal(t, 91, small.windows)
    assert.Equal(t, 30, small.target)
    assert.Equal(t, 60, small.balanced.Total)

    big, err := sweep(ds, 50, 1, 0, false)
    require.NoError(t, err)
    assert.Equal(t, 51, big.windows)
    assert.Equal(t, 21, big.target)
    assert.Equal(t, 21, big.balanced.Get(data.NonRequest))

    points := []sweepPoint{small, big}
    classes := classUnion(points)
    assert.Equal(t, []int{data.NonRequest, data.RightHand}, classes)

    path := filepath.Join(t.TempDir(), "sweep.csv")
    require.NoError(t, writeCSV(path, points, classes))
    f, err := os.Open(path)
    require.NoError(t, err)
    defer f.Close()
    rows, err := csv.NewReader(f).ReadAll()
    require.NoError(t, err)
    assert.Equal(t, []string{"size", "windows", "target", "balanced", "class_0", "class_3"}, rows[0])
    assert.Equal(t, []string{"10", "91", "30", "60", "30", "30"}, rows[1])
}

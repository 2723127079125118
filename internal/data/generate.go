package data

import (
    "encoding/csv"
    "fmt"
    "math"
    "math/rand"
    "os"
    "path/filepath"
    "strconv"
)

// SyntheticOptions describes a batch of fake recordings.
type SyntheticOptions struct {
    Files    int
    Rows     int
    Features int
    Seed     int64
    // Weights is the relative frequency of each class segment, indexed by label.
    Weights []float64
}

// DefaultSyntheticOptions mimics the skew of real captures: most of the time
// nobody is asking for anything.
func DefaultSyntheticOptions() SyntheticOptions {
    return SyntheticOptions{
        Files:    4,
        Rows:     2000,
        Features: 6,
        Seed:     42,
        Weights:  []float64{0.55, 0.15, 0.18, 0.12},
    }
}

// GenerateSynthetic writes opts.Files recordings into dir using the same
// layout LoadDir expects: index, channels..., feature (label), subject.
func GenerateSynthetic(dir string, opts SyntheticOptions) ([]string, error) {
    if opts.Files <= 0 || opts.Rows < 0 || opts.Features <= 0 {
        return nil, fmt.Errorf("opções sintéticas inválidas: %+v", opts)
    }
    if len(opts.Weights) == 0 {
        opts.Weights = DefaultSyntheticOptions().Weights
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, err
    }
    rng := rand.New(rand.NewSource(opts.Seed))

    header := make([]string, 0, opts.Features+3)
    header = append(header, "index")
    for j := 0; j < opts.Features; j++ {
        header = append(header, "ch"+strconv.Itoa(j))
    }
    header = append(header, "feature", "subject")

    paths := make([]string, 0, opts.Files)
    for k := 0; k < opts.Files; k++ {
        path := filepath.Join(dir, fmt.Sprintf("recording_%02d.csv", k))
        if err := writeRecording(path, header, k, opts, rng); err != nil {
            return nil, err
        }
        paths = append(paths, path)
    }
    return paths, nil
}

func writeRecording(path string, header []string, subject int, opts SyntheticOptions, rng *rand.Rand) error {
    f, err := os.Create(path)
    if err != nil {
        return err
    }
    defer f.Close()

    w := csv.NewWriter(f)
    if err := w.Write(header); err != nil {
        return err
    }

    label := pickClass(opts.Weights, rng)
    remaining := segmentLength(rng)
    rec := make([]string, len(header))
    for i := 0; i < opts.Rows; i++ {
        if remaining == 0 {
            label = pickClass(opts.Weights, rng)
            remaining = segmentLength(rng)
        }
        remaining--

        rec[0] = strconv.Itoa(i)
        for j := 0; j < opts.Features; j++ {
            phase := float64(i)/10 + float64(j)
            v := math.Sin(phase)*0.5 + float64(label)*0.8 + rng.NormFloat64()*0.2
            rec[j+1] = strconv.FormatFloat(v, 'f', 4, 64)
        }
        rec[len(rec)-2] = strconv.Itoa(label)
        rec[len(rec)-1] = "S" + strconv.Itoa(subject)
        if err := w.Write(rec); err != nil {
            return err
        }
    }
    w.Flush()
    return w.Error()
}

func pickClass(weights []float64, rng *rand.Rand) int {
    sum := 0.0
    for _, w := range weights {
        sum += w
    }
    r := rng.Float64() * sum
    for c, w := range weights {
        if r < w {
            return c
        }
        r -= w
    }
    return len(weights) - 1
}

// gestures last between one and four seconds at ~25 Hz
func segmentLength(rng *rand.Rand) int {
    return 25 + rng.Intn(75)
}

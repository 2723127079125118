package features

import (
    "errors"
    "fmt"

    "gonum.org/v1/gonum/mat"

    "sensorprep/internal/data"
)

const (
    DefaultWindowSize = 20
    DefaultStride     = 1
)

var (
    ErrBadWindow      = errors.New("tamanho de janela e stride devem ser >= 1")
    ErrLengthMismatch = errors.New("features e labels com tamanhos diferentes")
)

// Windows holds fixed-size slices of consecutive rows. Y[i] is the label of
// the last row of X[i].
type Windows struct {
    X      [][][]float64
    Y      []int
    Size   int
    Stride int
}

func (w *Windows) Len() int { return len(w.Y) }

func (w *Windows) NumFeatures() int {
    if len(w.X) == 0 || len(w.X[0]) == 0 {
        return 0
    }
    return len(w.X[0][0])
}

// Count returns how many windows Slide produces for n rows.
func Count(n, size, stride int) int {
    if size < 1 || stride < 1 || n < size {
        return 0
    }
    return (n-size)/stride + 1
}

// Slide cuts features into windows of size rows advancing stride rows each
// step. Windows share the underlying row slices with features.
func Slide(features [][]float64, labels []int, size, stride int) (*Windows, error) {
    if size < 1 || stride < 1 {
        return nil, ErrBadWindow
    }
    if len(features) != len(labels) {
        return nil, fmt.Errorf("%d != %d: %w", len(features), len(labels), ErrLengthMismatch)
    }
    n := Count(len(features), size, stride)
    w := &Windows{X: make([][][]float64, 0, n), Y: make([]int, 0, n), Size: size, Stride: stride}
    for i := 0; i+size <= len(features); i += stride {
        w.X = append(w.X, features[i:i+size:i+size])
        w.Y = append(w.Y, labels[i+size-1])
    }
    return w, nil
}

// SlideDataset windows a loaded dataset. With respectFiles set no window
// crosses from one recording into the next; otherwise the stacked rows are
// treated as one long series.
func SlideDataset(ds *data.Dataset, size, stride int, respectFiles bool) (*Windows, error) {
    if !respectFiles || len(ds.Sources) == 0 {
        return Slide(ds.Features, ds.Labels, size, stride)
    }
    out := &Windows{Size: size, Stride: stride}
    for _, s := range ds.Sources {
        w, err := Slide(ds.Features[s.Start:s.End], ds.Labels[s.Start:s.End], size, stride)
        if err != nil {
            return nil, fmt.Errorf("%s: %w", s.File, err)
        }
        out.X = append(out.X, w.X...)
        out.Y = append(out.Y, w.Y...)
    }
    return out, nil
}

// Take gathers the windows at idx, in idx order.
func (w *Windows) Take(idx []int) *Windows {
    out := &Windows{X: make([][][]float64, len(idx)), Y: make([]int, len(idx)), Size: w.Size, Stride: w.Stride}
    for i, j := range idx {
        out.X[i] = w.X[j]
        out.Y[i] = w.Y[j]
    }
    return out
}

// Flatten lays each window out row-major: size*features values per window.
func (w *Windows) Flatten() [][]float64 {
    out := make([][]float64, len(w.X))
    for i, win := range w.X {
        row := make([]float64, 0, len(win)*w.NumFeatures())
        for _, r := range win {
            row = append(row, r...)
        }
        out[i] = row
    }
    return out
}

// Matrix is Flatten as a dense n x (size*features) matrix. Returns nil when
// there are no windows.
func (w *Windows) Matrix() *mat.Dense {
    n := w.Len()
    cols := w.Size * w.NumFeatures()
    if n == 0 || cols == 0 {
        return nil
    }
    m := mat.NewDense(n, cols, nil)
    for i, row := range w.Flatten() {
        m.SetRow(i, row)
    }
    return m
}

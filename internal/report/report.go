package report

import (
    "encoding/csv"
    "fmt"
    "math"
    "os"
    "path/filepath"
    "strconv"

    "github.com/montanaflynn/stats"
    "go.uber.org/zap"

    "sensorprep/internal/sampling"
    "sensorprep/pkg/utils"
)

// Stage is a named snapshot of the class distribution at one pipeline step.
type Stage struct {
    Name string                `json:"name"`
    Dist sampling.Distribution `json:"distribution"`
}

// LogDistribution writes one line per class under title.
func LogDistribution(logger *zap.Logger, title string, d sampling.Distribution) {
    logger = utils.OrNop(logger)
    logger.Info(title, zap.Int("total", d.Total), zap.Int("classes", len(d.Classes)))
    for _, c := range d.Classes {
        logger.Info("Classe",
            zap.String("stage", title),
            zap.Int("class", c.Class),
            zap.String("name", c.Name),
            zap.Int("count", c.Count),
            zap.Float64("percent", round2(c.Percent)),
        )
    }
}

func WriteDistributionCSV(path string, stages []Stage) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return err
    }
    f, err := os.Create(path)
    if err != nil {
        return err
    }
    defer f.Close()
    w := csv.NewWriter(f)
    if err := w.Write([]string{"stage", "class", "name", "count", "percent"}); err != nil {
        return err
    }
    for _, st := range stages {
        for _, c := range st.Dist.Classes {
            rec := []string{st.Name, strconv.Itoa(c.Class), c.Name, strconv.Itoa(c.Count), fmt.Sprintf("%.2f", c.Percent)}
            if err := w.Write(rec); err != nil {
                return err
            }
        }
    }
    w.Flush()
    return w.Error()
}

// FeatureStat summarises one feature column.
type FeatureStat struct {
    Name string  `json:"name"`
    Mean float64 `json:"mean"`
    Std  float64 `json:"std"`
    Min  float64 `json:"min"`
    Max  float64 `json:"max"`
}

// FeatureSummary computes per-column statistics of a row-major matrix. names
// may be shorter than the number of columns.
func FeatureSummary(X [][]float64, names []string) ([]FeatureStat, error) {
    if len(X) == 0 {
        return nil, nil
    }
    nCols := len(X[0])
    out := make([]FeatureStat, nCols)
    col := make(stats.Float64Data, len(X))
    for j := 0; j < nCols; j++ {
        for i := range X {
            col[i] = X[i][j]
        }
        fs := FeatureStat{Name: "f" + strconv.Itoa(j)}
        if j < len(names) {
            fs.Name = names[j]
        }
        var err error
        if fs.Mean, err = col.Mean(); err != nil {
            return nil, fmt.Errorf("%s: %w", fs.Name, err)
        }
        if fs.Std, err = col.StandardDeviation(); err != nil {
            return nil, fmt.Errorf("%s: %w", fs.Name, err)
        }
        if fs.Min, err = col.Min(); err != nil {
            return nil, fmt.Errorf("%s: %w", fs.Name, err)
        }
        if fs.Max, err = col.Max(); err != nil {
            return nil, fmt.Errorf("%s: %w", fs.Name, err)
        }
        out[j] = fs
    }
    return out, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

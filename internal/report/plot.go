package report

import (
    "errors"
    "os"
    "path/filepath"
    "sort"

    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"

    "sensorprep/internal/data"
)

var ErrNothingToPlot = errors.New("nada para plotar")

// PlotDistribution draws one group of bars per class, one bar per stage.
func PlotDistribution(path string, stages []Stage) error {
    classes := stageClasses(stages)
    if len(classes) == 0 {
        return ErrNothingToPlot
    }
    p := plot.New()
    p.Title.Text = "Distribuição de classes"
    p.Y.Label.Text = "Amostras"
    p.Legend.Top = true

    w := vg.Points(14)
    for i, st := range stages {
        vals := make(plotter.Values, len(classes))
        for k, c := range classes {
            vals[k] = float64(st.Dist.Get(c))
        }
        bars, err := plotter.NewBarChart(vals, w)
        if err != nil {
            return err
        }
        bars.LineStyle.Width = vg.Length(0)
        bars.Color = plotutil.Color(i)
        bars.Offset = w * vg.Length(float64(i)-float64(len(stages)-1)/2)
        p.Add(bars)
        p.Legend.Add(st.Name, bars)
    }
    names := make([]string, len(classes))
    for k, c := range classes {
        names[k] = data.ClassName(c)
    }
    p.NominalX(names...)
    return save(p, path)
}

// Series is one line of PlotLines.
type Series struct {
    Name string
    Y    []float64
}

// PlotLines draws every series against xs.
func PlotLines(path, title, xLabel, yLabel string, xs []int, series []Series) error {
    if len(xs) == 0 || len(series) == 0 {
        return ErrNothingToPlot
    }
    p := plot.New()
    p.Title.Text = title
    p.X.Label.Text = xLabel
    p.Y.Label.Text = yLabel
    p.Y.Min = 0

    args := make([]interface{}, 0, 2*len(series))
    for _, s := range series {
        pts := make(plotter.XYs, len(xs))
        for i := range xs {
            pts[i].X = float64(xs[i])
            pts[i].Y = s.Y[i]
        }
        args = append(args, s.Name, pts)
    }
    if err := plotutil.AddLinePoints(p, args...); err != nil {
        return err
    }
    return save(p, path)
}

func save(p *plot.Plot, path string) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return err
    }
    return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func stageClasses(stages []Stage) []int {
    seen := map[int]bool{}
    var out []int
    for _, st := range stages {
        for _, c := range st.Dist.Classes {
            if !seen[c.Class] {
                seen[c.Class] = true
                out = append(out, c.Class)
            }
        }
    }
    sort.Ints(out)
    return out
}

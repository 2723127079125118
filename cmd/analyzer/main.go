package main

import (
    "context"
    "encoding/csv"
    "flag"
    "fmt"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    "sensorprep/internal/config"
    "sensorprep/internal/data"
    "sensorprep/internal/features"
    "sensorprep/internal/report"
    "sensorprep/internal/sampling"
)

type sweepPoint struct {
    size     int
    windows  int
    target   int
    balanced sampling.Distribution
}

func main() {
    dataDir := flag.String("data", config.Default().DataDir, "Diretório com os CSVs separados")
    sizesFlag := flag.String("sizes", "5,10,20,40,80", "Tamanhos de janela separados por vírgula")
    stride := flag.Int("stride", 1, "Passo entre janelas")
    target := flag.Int("target", 0, "Tamanho alvo por classe (0 = segunda maior classe)")
    respect := flag.Bool("respect_files", false, "Não deixar janelas atravessarem arquivos")
    workers := flag.Int("workers", 4, "Arquivos lidos em paralelo")
    outImg := flag.String("out_img", "cmd/api/static/window_sweep.png", "PNG de saída")
    outCsv := flag.String("out_csv", "out/window_sweep.csv", "CSV de saída")
    flag.Parse()

    sizes, err := parseSizes(*sizesFlag)
    if err != nil { fmt.Println("Tamanhos inválidos:", err); os.Exit(1) }

    ds, err := data.LoadDir(context.Background(), *dataDir, data.LoadOptions{Workers: *workers})
    if err != nil { fmt.Println("Falha ao carregar dados:", err); os.Exit(1) }
    fmt.Printf("Linhas carregadas: %d | arquivos: %d | features: %d\n", ds.Len(), len(ds.Sources), ds.NumFeatures())

    points := make([]sweepPoint, 0, len(sizes))
    for _, s := range sizes {
        pt, err := sweep(ds, s, *stride, *target, *respect)
        if err != nil { fmt.Println("Falha na janela", s, ":", err); os.Exit(1) }
        points = append(points, pt)
        fmt.Printf("janela=%d | janelas=%d | alvo=%d | balanceado=%d\n", s, pt.windows, pt.target, pt.balanced.Total)
    }

    classes := classUnion(points)
    if err := writeCSV(*outCsv, points, classes); err != nil {
        fmt.Println("Erro ao salvar CSV:", err)
    } else {
        fmt.Println("Varredura salva em:", *outCsv)
    }

    series := []report.Series{{Name: "Janelas", Y: make([]float64, len(points))}, {Name: "Balanceado", Y: make([]float64, len(points))}}
    for _, c := range classes {
        series = append(series, report.Series{Name: data.ClassName(c), Y: make([]float64, len(points))})
    }
    for i, pt := range points {
        series[0].Y[i] = float64(pt.windows)
        series[1].Y[i] = float64(pt.balanced.Total)
        for k, c := range classes {
            series[2+k].Y[i] = float64(pt.balanced.Get(c))
        }
    }
    if err := report.PlotLines(*outImg, "Janelas por tamanho", "Tamanho da janela", "Amostras", sizes, series); err != nil {
        fmt.Println("Erro ao salvar PNG:", err)
    } else {
        fmt.Println("Gráfico salvo em:", *outImg)
    }
}

// sweep counts what balancing would keep for one window size.
func sweep(ds *data.Dataset, size, stride, target int, respect bool) (sweepPoint, error) {
    w, err := features.SlideDataset(ds, size, stride, respect)
    if err != nil { return sweepPoint{}, err }
    initial := sampling.Count(w.Y)
    if target <= 0 { target = sampling.TargetSize(initial) }
    bal := sampling.Projected(initial, target)
    return sweepPoint{size: size, windows: w.Len(), target: target, balanced: bal}, nil
}

func parseSizes(s string) ([]int, error) {
    var out []int
    for _, part := range strings.Split(s, ",") {
        part = strings.TrimSpace(part)
        if part == "" { continue }
        v, err := strconv.Atoi(part)
        if err != nil { return nil, err }
        if v < 1 { return nil, fmt.Errorf("tamanho %d < 1", v) }
        out = append(out, v)
    }
    if len(out) == 0 { return nil, fmt.Errorf("nenhum tamanho informado") }
    return out, nil
}

func classUnion(points []sweepPoint) []int {
    seen := map[int]bool{}
    var labels []int
    for _, pt := range points {
        for _, c := range pt.balanced.Classes {
            if !seen[c.Class] { seen[c.Class] = true; labels = append(labels, c.Class) }
        }
    }
    return sampling.Count(labels).Labels()
}

func writeCSV(path string, points []sweepPoint, classes []int) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()
    w := csv.NewWriter(f)
    defer w.Flush()
    hdr := []string{"size", "windows", "target", "balanced"}
    for _, c := range classes { hdr = append(hdr, "class_"+strconv.Itoa(c)) }
    if err := w.Write(hdr); err != nil { return err }
    for _, pt := range points {
        rec := []string{strconv.Itoa(pt.size), strconv.Itoa(pt.windows), strconv.Itoa(pt.target), strconv.Itoa(pt.balanced.Total)}
        for _, c := range classes { rec = append(rec, strconv.Itoa(pt.balanced.Get(c))) }
        if err := w.Write(rec); err != nil { return err }
    }
    return nil
}

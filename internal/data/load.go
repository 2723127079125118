package data

import (
    "context"
    "encoding/csv"
    "errors"
    "fmt"
    "math"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    "go.uber.org/multierr"
    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    "sensorprep/pkg/utils"
)

var (
    ErrNoCSVFiles    = errors.New("nenhum arquivo .csv encontrado")
    ErrEmptyFile     = errors.New("arquivo vazio")
    ErrTooFewColumns = errors.New("colunas insuficientes (mínimo 4)")
    ErrBadValue      = errors.New("valor não numérico")
    ErrBadLabel      = errors.New("label inválido")
    ErrShapeMismatch = errors.New("número de features diverge entre arquivos")
)

// LoadOptions tunes LoadDir. The zero value is usable.
type LoadOptions struct {
    Workers      int
    StrictLabels bool
    Logger       *zap.Logger
}

type fileData struct {
    name     string
    columns  []string
    features [][]float64
    labels   []int
}

// LoadDir reads every .csv file in dir and stacks them in lexical file order.
// Column 0 is skipped, the last two columns are not features and the
// second-to-last one carries the label.
func LoadDir(ctx context.Context, dir string, opts LoadOptions) (*Dataset, error) {
    logger := utils.OrNop(opts.Logger)
    entries, err := os.ReadDir(dir)
    if err != nil {
        return nil, fmt.Errorf("ler diretório %s: %w", dir, err)
    }
    files := make([]string, 0, len(entries))
    for _, e := range entries {
        if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
            continue
        }
        files = append(files, e.Name())
    }
    if len(files) == 0 {
        return nil, fmt.Errorf("%s: %w", dir, ErrNoCSVFiles)
    }

    workers := opts.Workers
    if workers <= 0 {
        workers = 1
    }
    logger.Info("Carregando arquivos", zap.String("dir", dir), zap.Int("files", len(files)), zap.Int("workers", workers))

    results := make([]*fileData, len(files))
    errs := make([]error, len(files))
    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(workers)
    for i, name := range files {
        g.Go(func() error {
            if err := gctx.Err(); err != nil {
                return err
            }
            fd, err := readFile(filepath.Join(dir, name), opts.StrictLabels)
            if err != nil {
                errs[i] = err
                return nil
            }
            logger.Info("Processando arquivo", zap.String("file", name), zap.Int("rows", len(fd.labels)))
            results[i] = fd
            return nil
        })
    }
    if err := g.Wait(); err != nil {
        return nil, err
    }
    if err := multierr.Combine(errs...); err != nil {
        return nil, err
    }
    return assemble(results)
}

func assemble(parts []*fileData) (*Dataset, error) {
    total := 0
    for _, p := range parts {
        total += len(p.labels)
    }
    ds := &Dataset{
        Features: make([][]float64, 0, total),
        Labels:   make([]int, 0, total),
        Columns:  parts[0].columns,
        Sources:  make([]Source, 0, len(parts)),
    }
    width := len(parts[0].columns)
    for _, p := range parts {
        if len(p.columns) != width {
            return nil, fmt.Errorf("%s tem %d features, esperado %d: %w", p.name, len(p.columns), width, ErrShapeMismatch)
        }
        start := len(ds.Labels)
        ds.Features = append(ds.Features, p.features...)
        ds.Labels = append(ds.Labels, p.labels...)
        ds.Sources = append(ds.Sources, Source{File: p.name, Start: start, End: len(ds.Labels)})
    }
    return ds, nil
}

func readFile(path string, strict bool) (*fileData, error) {
    name := filepath.Base(path)
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    r := csv.NewReader(f)
    rows, err := r.ReadAll()
    if err != nil {
        return nil, fmt.Errorf("%s: %w", name, err)
    }
    if len(rows) == 0 {
        return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
    }
    header := rows[0]
    nCols := len(header)
    if nCols < 4 {
        return nil, fmt.Errorf("%s: %w", name, ErrTooFewColumns)
    }
    labelCol := nCols - 2

    fd := &fileData{
        name:     name,
        columns:  append([]string(nil), header[1:labelCol]...),
        features: make([][]float64, 0, len(rows)-1),
        labels:   make([]int, 0, len(rows)-1),
    }
    for i := 1; i < len(rows); i++ {
        row := rows[i]
        vec := make([]float64, 0, labelCol-1)
        for j := 1; j < labelCol; j++ {
            v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
            if err != nil {
                return nil, fmt.Errorf("%s linha %d coluna %q: %w", name, i+1, header[j], ErrBadValue)
            }
            vec = append(vec, v)
        }
        label, err := parseLabel(row[labelCol])
        if err != nil || (strict && !KnownClass(label)) {
            return nil, fmt.Errorf("%s linha %d: %q: %w", name, i+1, row[labelCol], ErrBadLabel)
        }
        fd.features = append(fd.features, vec)
        fd.labels = append(fd.labels, label)
    }
    return fd, nil
}

// parseLabel accepts integers and integral floats such as "2.0".
func parseLabel(s string) (int, error) {
    s = strings.TrimSpace(s)
    if v, err := strconv.Atoi(s); err == nil {
        return v, nil
    }
    f, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return 0, err
    }
    if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
        return 0, ErrBadLabel
    }
    return int(f), nil
}

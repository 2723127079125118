package pipeline

import (
    "context"
    "errors"
    "fmt"
    "math/rand"

    "go.uber.org/zap"

    "sensorprep/internal/config"
    "sensorprep/internal/data"
    "sensorprep/internal/features"
    "sensorprep/internal/report"
    "sensorprep/internal/sampling"
    "sensorprep/pkg/utils"
)

var ErrNoWindows = errors.New("nenhuma janela gerada (dados menores que a janela?)")

const (
    StageInitial  = "inicial"
    StageBalanced = "balanceado"
    StageTrain    = "treino"
    StageTest     = "teste"
)

// Prepared is everything a trainer needs: stratified windows, their labels
// and per-class loss weights.
type Prepared struct {
    XTrain       [][][]float64
    XTest        [][][]float64
    YTrain       []int
    YTest        []int
    Classes      []int
    ClassWeights map[int]float64
    WindowSize   int
    Stride       int
    Columns      []string
    Stages       []report.Stage
}

// PrepareTrainTest loads cfg.DataDir and runs Prepare on it.
func PrepareTrainTest(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Prepared, error) {
    logger = utils.OrNop(logger)
    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    ds, err := data.LoadDir(ctx, cfg.DataDir, data.LoadOptions{
        Workers:      cfg.Workers,
        StrictLabels: cfg.StrictLabels,
        Logger:       logger,
    })
    if err != nil {
        return nil, fmt.Errorf("carregar dados: %w", err)
    }
    return Prepare(ds, cfg, logger)
}

// Prepare windows ds, under-samples the majority classes and splits the
// result per class.
func Prepare(ds *data.Dataset, cfg config.Config, logger *zap.Logger) (*Prepared, error) {
    logger = utils.OrNop(logger)
    w, err := features.SlideDataset(ds, cfg.WindowSize, cfg.Stride, cfg.RespectFiles)
    if err != nil {
        return nil, err
    }
    if w.Len() == 0 {
        return nil, ErrNoWindows
    }
    logger.Info("Janelas geradas", zap.Int("windows", w.Len()), zap.Int("size", w.Size), zap.Int("stride", w.Stride), zap.Int("features", w.NumFeatures()))

    initial := sampling.Count(w.Y)
    report.LogDistribution(logger, "Distribuição inicial", initial)

    target := cfg.TargetSize
    if target <= 0 {
        target = sampling.TargetSize(initial)
    }
    logger.Info("Balanceando dataset", zap.Int("target", target))
    balanced := w.Take(sampling.Undersample(w.Y, target, rand.New(rand.NewSource(cfg.Seed))))
    balancedDist := sampling.Count(balanced.Y)
    report.LogDistribution(logger, "Distribuição balanceada", balancedDist)

    trainIdx, testIdx, err := sampling.StratifiedSplit(balanced.Y, cfg.TestSize, rand.New(rand.NewSource(cfg.Seed)))
    if err != nil {
        return nil, err
    }
    train := balanced.Take(trainIdx)
    test := balanced.Take(testIdx)
    weights := sampling.BalancedWeights(balanced.Y)

    p := &Prepared{
        XTrain:       train.X,
        XTest:        test.X,
        YTrain:       train.Y,
        YTest:        test.Y,
        Classes:      balancedDist.Labels(),
        ClassWeights: weights,
        WindowSize:   w.Size,
        Stride:       w.Stride,
        Columns:      ds.Columns,
        Stages: []report.Stage{
            {Name: StageInitial, Dist: initial},
            {Name: StageBalanced, Dist: balancedDist},
            {Name: StageTrain, Dist: sampling.Count(train.Y)},
            {Name: StageTest, Dist: sampling.Count(test.Y)},
        },
    }
    report.LogDistribution(logger, "Conjunto de treino", p.Stages[2].Dist)
    report.LogDistribution(logger, "Conjunto de teste", p.Stages[3].Dist)
    logger.Info("Pesos de classe", zap.Float64s("weights", sampling.WeightVector(weights, p.Classes)), zap.Ints("classes", p.Classes))
    return p, nil
}

// Stage returns the named distribution snapshot.
func (p *Prepared) Stage(name string) (sampling.Distribution, bool) {
    for _, st := range p.Stages {
        if st.Name == name {
            return st.Dist, true
        }
    }
    return sampling.Distribution{}, false
}

// Summary describes a Prepared without the window payload.
type Summary struct {
    Train        int            `json:"train"`
    Test         int            `json:"test"`
    WindowSize   int            `json:"window_size"`
    Stride       int            `json:"stride"`
    Features     int            `json:"features"`
    Columns      []string       `json:"columns"`
    Classes      []int          `json:"classes"`
    ClassNames   []string       `json:"class_names"`
    ClassWeights []float64      `json:"class_weights"`
    Stages       []report.Stage `json:"stages"`
}

func (p *Prepared) Summary() Summary {
    names := make([]string, len(p.Classes))
    for i, c := range p.Classes {
        names[i] = data.ClassName(c)
    }
    nFeats := len(p.Columns)
    if len(p.XTrain) > 0 && len(p.XTrain[0]) > 0 {
        nFeats = len(p.XTrain[0][0])
    }
    return Summary{
        Train:        len(p.YTrain),
        Test:         len(p.YTest),
        WindowSize:   p.WindowSize,
        Stride:       p.Stride,
        Features:     nFeats,
        Columns:      p.Columns,
        Classes:      p.Classes,
        ClassNames:   names,
        ClassWeights: sampling.WeightVector(p.ClassWeights, p.Classes),
        Stages:       p.Stages,
    }
}

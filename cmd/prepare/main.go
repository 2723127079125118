package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"sensorprep/internal/config"
	"sensorprep/internal/data"
	"sensorprep/internal/pipeline"
	"sensorprep/internal/report"
	"sensorprep/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    cfgPath := flag.String("config", "", "Arquivo de configuração (.yaml, .toml ou .json)")
    dataDir := flag.String("data", "", "Diretório com os CSVs separados")
    window := flag.Int("window", 20, "Tamanho da janela deslizante")
    stride := flag.Int("stride", 1, "Passo entre janelas")
    testSize := flag.Float64("test_size", 0.2, "Fração de teste por classe")
    seed := flag.Int64("seed", 42, "Semente para balanceamento e divisão")
    target := flag.Int("target", 0, "Tamanho alvo por classe (0 = segunda maior classe)")
    workers := flag.Int("workers", 4, "Arquivos lidos em paralelo")
    strict := flag.Bool("strict_labels", false, "Rejeitar labels fora de 0..3")
    respect := flag.Bool("respect_files", false, "Não deixar janelas atravessarem arquivos")
    out := flag.String("out", "", "Caminho do dataset preparado (.gob)")
    distOut := flag.String("dist_out", "", "CSV com a distribuição por etapa")
    plotOut := flag.String("plot_out", "", "PNG com a distribuição por etapa")
    regen := flag.Bool("regen", false, "Gerar gravações sintéticas no diretório de dados antes de preparar")
    regenFiles := flag.Int("regen_files", 4, "Arquivos sintéticos")
    regenRows := flag.Int("regen_rows", 2000, "Linhas por arquivo sintético")
    summary := flag.Bool("summary", false, "Registrar estatísticas por feature")
    flag.Parse()

    cfg, err := config.Load(*cfgPath)
    if err != nil {
        logger.Fatal("Falha ao carregar configuração", zap.Error(err))
    }
    flag.Visit(func(f *flag.Flag) {
        switch f.Name {
        case "data":
            cfg.DataDir = *dataDir
        case "window":
            cfg.WindowSize = *window
        case "stride":
            cfg.Stride = *stride
        case "test_size":
            cfg.TestSize = *testSize
        case "seed":
            cfg.Seed = *seed
        case "target":
            cfg.TargetSize = *target
        case "workers":
            cfg.Workers = *workers
        case "strict_labels":
            cfg.StrictLabels = *strict
        case "respect_files":
            cfg.RespectFiles = *respect
        case "out":
            cfg.Output.Dataset = *out
        case "dist_out":
            cfg.Output.Distribution = *distOut
        case "plot_out":
            cfg.Output.Plot = *plotOut
        }
    })
    if err := cfg.Validate(); err != nil {
        logger.Fatal("Configuração inválida", zap.Error(err))
    }

    if *regen {
        opts := data.DefaultSyntheticOptions()
        opts.Files = *regenFiles
        opts.Rows = *regenRows
        opts.Seed = cfg.Seed
        logger.Info("Gerando gravações sintéticas", zap.String("dir", cfg.DataDir), zap.Int("files", opts.Files), zap.Int("rows", opts.Rows))
        if _, err := data.GenerateSynthetic(cfg.DataDir, opts); err != nil {
            logger.Fatal("Falha ao gerar dados sintéticos", zap.Error(err))
        }
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
    defer stop()

    logger.Info("Carregando dados", zap.String("dir", cfg.DataDir))
    ds, err := data.LoadDir(ctx, cfg.DataDir, data.LoadOptions{Workers: cfg.Workers, StrictLabels: cfg.StrictLabels, Logger: logger})
    if err != nil {
        logger.Fatal("Falha ao carregar dados", zap.Error(err))
    }
    if *summary {
        stats, err := report.FeatureSummary(ds.Features, ds.Columns)
        if err != nil {
            logger.Warn("Falha ao resumir features", zap.Error(err))
        }
        for _, s := range stats {
            logger.Info("Feature", zap.String("name", s.Name), zap.Float64("mean", s.Mean), zap.Float64("std", s.Std), zap.Float64("min", s.Min), zap.Float64("max", s.Max))
        }
    }

    p, err := pipeline.Prepare(ds, cfg, logger)
    if err != nil {
        logger.Fatal("Falha ao preparar dados", zap.Error(err))
    }

    if err := pipeline.Save(cfg.Output.Dataset, p); err != nil {
        logger.Fatal("Falha ao salvar dataset", zap.Error(err))
    }
    logger.Info("Dataset salvo", zap.String("path", cfg.Output.Dataset), zap.Int("train", len(p.YTrain)), zap.Int("test", len(p.YTest)))

    if cfg.Output.Distribution != "" {
        if err := report.WriteDistributionCSV(cfg.Output.Distribution, p.Stages); err != nil {
            logger.Warn("Falha ao salvar CSV da distribuição", zap.Error(err))
        }
    }
    if cfg.Output.Plot != "" {
        if err := report.PlotDistribution(cfg.Output.Plot, p.Stages); err != nil {
            logger.Warn("Falha ao salvar PNG da distribuição", zap.Error(err))
        } else {
            logger.Info("Gráfico de distribuição gerado", zap.String("png", cfg.Output.Plot))
        }
    }

    fmt.Println("Pré-processamento concluído com sucesso!")
}

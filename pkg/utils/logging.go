package utils

import (
    "os"
    "path/filepath"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Logger returns the process-wide logger. LOG_FILE tees JSON output to a file
// as well as stdout, LOG_LEVEL sets the minimum level (default info).
func Logger() *zap.Logger {
    if logger != nil {
        return logger
    }
    lvl := logLevel()
    logFile := os.Getenv("LOG_FILE")
    if logFile == "" {
        cfg := zap.NewProductionConfig()
        cfg.Level = zap.NewAtomicLevelAt(lvl)
        cfg.OutputPaths = []string{"stdout"}
        l, err := cfg.Build()
        if err != nil {
            l = zap.NewNop()
        }
        logger = l.Named("sensorprep")
        return logger
    }
    _ = os.MkdirAll(filepath.Dir(logFile), 0o755)
    f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        l, _ := zap.NewProduction()
        logger = l.Named("sensorprep")
        return logger
    }
    enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
    fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
    consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
    logger = zap.New(zapcore.NewTee(fileCore, consoleCore)).Named("sensorprep")
    return logger
}

// OrNop lets library code accept a nil logger.
func OrNop(l *zap.Logger) *zap.Logger {
    if l == nil {
        return zap.NewNop()
    }
    return l
}

func logLevel() zapcore.Level {
    lvl, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL"))
    if err != nil {
        return zapcore.InfoLevel
    }
    return lvl
}

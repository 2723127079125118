package main

import (
    "net/http"
    "os"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/goccy/go-json"
    "go.uber.org/zap"

    "sensorprep/internal/config"
    "sensorprep/internal/pipeline"
    "sensorprep/pkg/utils"
)

type server struct {
    prepared  *pipeline.Prepared
    staticDir string
    apiKey    string
}

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    path := os.Getenv("DATASET_PATH")
    if path == "" { path = config.Default().Output.Dataset }
    s := &server{staticDir: "cmd/api/static", apiKey: os.Getenv("API_KEY")}
    if p, err := pipeline.Load(path); err == nil {
        s.prepared = p
        logger.Info("Dataset carregado", zap.String("path", path), zap.Int("train", len(p.YTrain)), zap.Int("test", len(p.YTest)))
    } else {
        logger.Warn("Dataset indisponível, rode cmd/prepare primeiro", zap.String("path", path), zap.Error(err))
    }

    port := os.Getenv("PORT")
    if port == "" { port = "8080" }
    if err := s.router().Run(":" + port); err != nil {
        logger.Fatal("Servidor encerrado", zap.Error(err))
    }
}

func (s *server) router() *gin.Engine {
    r := gin.Default()
    r.Static("/static", s.staticDir)
    r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok", "dataset": s.prepared != nil}) })

    api := r.Group("/")
    api.Use(s.apiKeyMiddleware)
    api.GET("/summary", s.handleSummary)
    api.GET("/distribution", s.handleDistribution)
    return r
}

func (s *server) apiKeyMiddleware(c *gin.Context) {
    if s.apiKey == "" { c.Next(); return }
    if c.GetHeader("X-API-Key") != s.apiKey {
        c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    c.Next()
}

func (s *server) handleSummary(c *gin.Context) {
    if s.prepared == nil { c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset não carregado"}); return }
    b, err := json.Marshal(s.prepared.Summary())
    if err != nil { c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()}); return }
    c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

func (s *server) handleDistribution(c *gin.Context) {
    if s.prepared == nil { c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset não carregado"}); return }
    stage := strings.ToLower(c.Query("stage"))
    if stage == "" {
        c.JSON(http.StatusOK, gin.H{"stages": s.prepared.Stages})
        return
    }
    d, ok := s.prepared.Stage(stage)
    if !ok { c.JSON(http.StatusNotFound, gin.H{"error": "etapa desconhecida", "stage": stage}); return }
    c.JSON(http.StatusOK, gin.H{"stage": stage, "distribution": d})
}

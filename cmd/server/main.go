package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/slomo31/nba-q1-system/internal/client/espn"
	"github.com/slomo31/nba-q1-system/internal/client/oddsapi"
	"github.com/slomo31/nba-q1-system/internal/config"
	cronrunner "github.com/slomo31/nba-q1-system/internal/cron"
	"github.com/slomo31/nba-q1-system/internal/grade"
	"github.com/slomo31/nba-q1-system/internal/handler"
	"github.com/slomo31/nba-q1-system/internal/logger"
	"github.com/slomo31/nba-q1-system/internal/model"
	"github.com/slomo31/nba-q1-system/internal/models"
	"github.com/slomo31/nba-q1-system/internal/pick"
	"github.com/slomo31/nba-q1-system/internal/service"
	"github.com/slomo31/nba-q1-system/internal/store/csvstore"
)

// modelHolder lets the trainer swap the artifact while the scorer and the
// readiness probe read it.
type modelHolder struct {
	mu       sync.RWMutex
	artifact *model.Artifact
}

func (h *modelHolder) Get() *model.Artifact {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.artifact
}

func (h *modelHolder) Set(a *model.Artifact) {
	h.mu.Lock()
	h.artifact = a
	h.mu.Unlock()
}

func (h *modelHolder) Predict(features []float64) (float64, error) {
	a := h.Get()
	if a == nil {
		return 0, errNoModel
	}
	return a.Predict(features)
}

func (h *modelHolder) FeatureColumns() []string {
	a := h.Get()
	if a == nil {
		return nil
	}
	return a.FeatureColumns()
}

func (h *modelHolder) CheckColumns(columns []string) error {
	a := h.Get()
	if a == nil {
		return errNoModel
	}
	return a.CheckColumns(columns)
}

var errNoModel = errors.New("no model loaded")

var _ model.Predictor = (*modelHolder)(nil)

func main() {
	trainOnly := flag.Bool("train", false, "train a model on the stored games and exit")
	flag.Parse()

	cfgPath := os.Getenv("Q1_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if envOnlyRaw := os.Getenv("Q1_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gameStore := csvstore.NewGameStore(cfg.Data.GamesFile)
	predictionStore := csvstore.NewPredictionStore(cfg.Data.PredictionsDir, cfg.Data.ParlaysDir)
	resultStore := csvstore.NewResultStore(cfg.Data.ResultsFile)

	seasonStart, err := time.Parse(models.DateFormat, cfg.ESPN.SeasonStart)
	if err != nil {
		logger.Fatal("bad season start date", zap.String("value", cfg.ESPN.SeasonStart), zap.Error(err))
	}

	espnHTTP := &http.Client{Timeout: cfg.ESPN.Timeout}
	espnClient := espn.NewClient(espnHTTP, cfg.ESPN.BaseURL)
	oddsHTTP := &http.Client{Timeout: cfg.OddsAPI.Timeout}
	oddsClient := oddsapi.NewClient(oddsHTTP, cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey, cfg.OddsAPI.Sport, cfg.OddsAPI.Regions)

	trainParams := model.TrainParams{
		Window:       cfg.Model.Window,
		MinHistory:   cfg.Model.MinHistory,
		TestFraction: cfg.Model.TestFraction,
		RidgeLambda:  cfg.Model.RidgeLambda,
		ShuffleSeed:  cfg.Model.ShuffleSeed,
	}
	gradingParams := grade.Params{
		Threshold:    cfg.Grading.Threshold,
		PayoutPerWin: decimal.NewFromFloat(cfg.Grading.PayoutPerWin),
	}
	pickParams := pick.Params{
		TopK:           cfg.Picks.TopK,
		DirectionBand:  cfg.Picks.DirectionBand,
		HighConfidence: cfg.Picks.HighConfidence,
	}

	trainer := &service.TrainingService{
		Games:    gameStore,
		Logger:   logger,
		Params:   trainParams,
		ModelDir: cfg.Data.ModelDir,
	}

	if *trainOnly {
		if _, err := trainer.RunOnce(context.Background()); err != nil {
			logger.Fatal("training failed", zap.Error(err))
		}
		return
	}

	holder := &modelHolder{}
	modelPath := filepath.Join(cfg.Data.ModelDir, service.ModelFileName)
	if artifact, err := model.Load(modelPath); err == nil {
		holder.Set(artifact)
		logger.Info("model loaded", zap.String("path", modelPath),
			zap.Time("trained_at", artifact.TrainedAt))
	} else {
		logger.Warn("no model artifact, scoring disabled until trained", zap.Error(err))
	}
	if cfg.Model.RetrainOnStart || holder.Get() == nil {
		if artifact, err := trainer.RunOnce(context.Background()); err != nil {
			logger.Warn("startup training failed", zap.Error(err))
		} else {
			holder.Set(artifact)
		}
	}

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		logger.Fatal("load timezone failed", zap.Error(err))
	}

	ingestor := &service.IngestService{
		Games:       gameStore,
		ESPN:        espnClient,
		Logger:      logger,
		SeasonStart: seasonStart,
		DayDelay:    cfg.ESPN.DayDelay,
	}
	scorer := &service.ScoringService{
		Games:       gameStore,
		Predictions: predictionStore,
		Odds:        oddsClient,
		Predictor:   holder,
		Logger:      logger,
		Window:      cfg.Model.Window,
		PickParams:  pickParams,
		Bookmaker:   cfg.OddsAPI.Bookmaker,
		Location:    eastern,
	}
	tracker := &service.TrackingService{
		Predictions: predictionStore,
		Results:     resultStore,
		ESPN:        espnClient,
		Logger:      logger,
		Grading:     gradingParams,
	}

	scoreJob := func(ctx context.Context) error {
		if holder.Get() == nil {
			logger.Warn("scoring skipped, no model loaded")
			return nil
		}
		return scorer.RunOnce(ctx)
	}
	trainJob := func(ctx context.Context) error {
		artifact, err := trainer.RunOnce(ctx)
		if err != nil {
			return err
		}
		holder.Set(artifact)
		return nil
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{Games: gameStore, Model: holder.Get}
	healthHandler.Register(engine)
	dashboard := &handler.DashboardHandler{
		Games:       gameStore,
		Predictions: predictionStore,
		Results:     resultStore,
		Grading:     gradingParams,
	}
	dashboard.Register(engine)
	jobs := &handler.JobsHandler{
		Ingest: ingestor.RunOnce,
		Score:  scoreJob,
		Track:  tracker.RunOnce,
		Train:  trainJob,
		Logger: logger,
	}
	jobs.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.Ingest, func(ctx context.Context) {
			if err := ingestor.RunOnce(ctx); err != nil {
				logger.Warn("cron ingest failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register ingest failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.Scoring, func(ctx context.Context) {
			if err := scoreJob(ctx); err != nil {
				logger.Warn("cron scoring failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register scoring failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.Tracking, func(ctx context.Context) {
			if err := tracker.RunOnce(ctx); err != nil {
				logger.Warn("cron tracking failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register tracking failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

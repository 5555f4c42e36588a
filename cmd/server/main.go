package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/bank"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/cache"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/config"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/engine"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/evaluation"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/generator"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/handlers"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/jobs"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/llm"
	_ "github.com/sushant-mutnale/StudentHub-sub000/internal/llm/gemini"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/monitoring"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/patterns"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/routers"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/sandbox"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store/memory"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store/mongodb"
)

// initBankDatabase opens the question bank database. Postgres when a DSN is
// configured, a local sqlite file otherwise.
func initBankDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.PostgresDSN != "" {
		return gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("store", cfg.StoreBackend),
		zap.String("provider", cfg.Provider))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider is optional; without one the engine runs on the question
	// bank and heuristic evaluators alone
	var aiProvider llm.Provider
	if cfg.Provider != "" {
		aiProvider, err = llm.NewProvider(cfg.Provider)
		if err != nil {
			logger.Fatal("Failed to initialize AI provider", zap.Error(err))
		}
		logger.Info("AI provider initialized", zap.String("provider", aiProvider.GetProviderName()))
	}

	// question bank
	var bankRepo *bank.Repository
	db, err := initBankDatabase(cfg)
	if err != nil {
		logger.Error("Failed to open question bank database, bank tier disabled", zap.Error(err))
	} else {
		bankRepo, err = bank.NewRepository(db)
		if err != nil {
			logger.Fatal("Failed to migrate question bank", zap.Error(err))
		}
		seeded, err := bankRepo.Seed()
		if err != nil {
			logger.Error("Failed to seed question bank", zap.Error(err))
		} else if seeded > 0 {
			logger.Info("Question bank seeded", zap.Int("questions", seeded))
		}
	}

	// session store
	var sessions store.SessionStore
	var mongoClient *mongodb.Client
	if cfg.StoreBackend == "mongo" {
		mongoClient, err = mongodb.NewClient(context.Background(), cfg.MongoURI)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		sessions, err = mongodb.NewSessionStore(mongoClient, cfg.MongoDB, "")
		if err != nil {
			logger.Fatal("Failed to initialize session store", zap.Error(err))
		}
	} else {
		sessions = memory.NewStore()
	}

	// redis backs the report cache and completion events, both optional
	var reportCache *cache.ReportCache
	var publisher *cache.Publisher
	extraChecks := make(map[string]handlers.Pinger)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		reportCache = cache.NewReportCache(rdb, cfg.ReportCacheTTL)
		publisher = cache.NewPublisher(rdb, logger)
		extraChecks["redis"] = reportCache
	}

	// remote collaborators
	var runner evaluation.SandboxRunner
	if cfg.SandboxURL != "" {
		runner = sandbox.NewClient(cfg.SandboxURL, cfg.SandboxTimeout)
	}
	var patternLookup patterns.Lookup
	if cfg.PatternsURL != "" {
		patternLookup = patterns.NewHTTPLookup(cfg.PatternsURL, 5*time.Second)
	}

	var questionBank generator.QuestionBank
	if bankRepo != nil {
		questionBank = bankRepo
		extraChecks["question_bank"] = bankRepo
	}

	gen := generator.New(questionBank, aiProvider, promptManager, cfg.LLMTimeout, logger)
	evaluator := evaluation.New(aiProvider, promptManager, runner, cfg.LLMTimeout, logger)

	eng := engine.New(engine.Deps{
		Store:      sessions,
		Generator:  gen,
		Evaluator:  evaluator,
		Patterns:   patternLookup,
		Reports:    reportCache,
		Events:     publisher,
		Provider:   aiProvider,
		Prompts:    promptManager,
		LLMTimeout: cfg.LLMTimeout,
		Logger:     logger,
	})

	sessionHandler := handlers.NewSessionHandler(eng, logger)
	reportHandler := handlers.NewReportHandler(eng, logger)
	healthHandler := handlers.NewHealthHandler(sessions, promptManager, extraChecks)

	// stale sessions are abandoned on a schedule
	sweeper := jobs.NewSessionSweeperJob(sessions, cfg.SweepSchedule, cfg.SessionIdleTimeout, logger)
	if err := sweeper.Start(); err != nil {
		logger.Error("Failed to start session sweeper", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(monitoring.Middleware)

	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, sessionHandler, reportHandler, cfg.JWTSecret)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	sweeper.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("Failed to disconnect MongoDB client", zap.Error(err))
		}
	}

	logger.Info("Interview service exited")
}

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studybyte/internal/adapter"
	"studybyte/internal/adapter/llm"
	"studybyte/internal/adapter/loader"
	"studybyte/internal/adapter/scraper"
	"studybyte/internal/adapter/splitter"
	"studybyte/internal/adapter/websearch"
	"studybyte/internal/cache"
	"studybyte/internal/config"
	"studybyte/internal/domain"
	"studybyte/internal/handler"
	"studybyte/internal/logger"
	"studybyte/internal/middleware"
	"studybyte/internal/pipeline"
	"studybyte/internal/service"
	"studybyte/internal/tracker"
	"studybyte/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Redis is optional: without it the analysis cache and session stats are
	// simply disabled.
	var resultCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		resultCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Redis cache initialized", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Info("Redis not configured; caching disabled")
	}

	generator, err := llm.NewOpenAIGenerator(cfg.LLM.OpenAIAPIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	if err != nil {
		appLogger.Fatal("Failed to create LLM generator", zap.Error(err))
	}

	searchClient := websearch.NewTavilyClient(cfg.Search.TavilyAPIKey)
	if !searchClient.Available() {
		appLogger.Warn("Tavily API key not configured; search input and URL fallback disabled")
	}

	// The rich scraper is optional; its absence is handled by the extraction
	// fallback chain.
	var urlScraper domain.Scraper
	if cfg.Scraper.FirecrawlAPIKey != "" {
		urlScraper, err = scraper.NewFirecrawlScraper(cfg.Scraper.FirecrawlAPIKey)
		if err != nil {
			appLogger.Fatal("Failed to create Firecrawl scraper", zap.Error(err))
		}
		appLogger.Info("Firecrawl scraper initialized")
	}

	extractor := service.NewContentExtractor(urlScraper, searchClient)
	acquisition := service.NewAcquisitionService(
		loader.NewDocumentLoader(),
		splitter.NewRecursiveSplitter(cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap),
		extractor,
		searchClient,
		cfg.Search.MaxResults,
	)
	analysis := service.NewAnalysisService(
		generator,
		resultCache,
		cfg.Redis.TTL,
		cfg.Pipeline.MaxSummaryWords,
		cfg.Pipeline.NumKeyPoints,
		cfg.Pipeline.AnalysisContentMax,
	)
	quiz := service.NewQuizService(generator, cfg.Pipeline.QuizContentMax)
	sessions := tracker.NewSessionTracker(resultCache, cfg.Redis.TTL)

	orchestrator := pipeline.NewOrchestrator(acquisition, analysis, quiz, sessions)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	studyHandler := handler.NewStudyHandler(
		orchestrator,
		validation.NewValidator(),
		searchClient,
		resultCache,
		cfg.UploadDir,
		cfg.Pipeline.DefaultNumQuestions,
	)
	studyHandler.RegisterRoutes(app.Group("/api"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
}

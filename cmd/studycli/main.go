package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"studybyte/internal/adapter/llm"
	"studybyte/internal/adapter/loader"
	"studybyte/internal/adapter/scraper"
	"studybyte/internal/adapter/splitter"
	"studybyte/internal/adapter/websearch"
	"studybyte/internal/config"
	"studybyte/internal/domain"
	"studybyte/internal/logger"
	"studybyte/internal/pipeline"
	"studybyte/internal/service"
	"studybyte/internal/tracker"
	"studybyte/internal/validation"

	"go.uber.org/zap"
)

// studycli runs a single study session from the command line and prints the
// summary, key points, quiz and processing trace.
func main() {
	inputType := flag.String("input-type", "", "Type of input: file, text, url, or search")
	inputData := flag.String("input-data", "", "Input data: file path, text, URL, or search query")
	numQuestions := flag.Int("num-questions", 5, "Number of quiz questions to generate")
	difficulty := flag.String("difficulty", "mixed", "Difficulty level: easy, medium, hard, or mixed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if errs := validation.NewValidator().ValidateStudyRequest(*inputType, *inputData, *numQuestions, *difficulty, true); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "invalid arguments: %s\n", errs.Error())
		os.Exit(2)
	}

	generator, err := llm.NewOpenAIGenerator(cfg.LLM.OpenAIAPIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	if err != nil {
		logger.Get().Fatal("Failed to create LLM generator", zap.Error(err))
	}

	searchClient := websearch.NewTavilyClient(cfg.Search.TavilyAPIKey)

	var urlScraper domain.Scraper
	if cfg.Scraper.FirecrawlAPIKey != "" {
		urlScraper, err = scraper.NewFirecrawlScraper(cfg.Scraper.FirecrawlAPIKey)
		if err != nil {
			logger.Get().Fatal("Failed to create Firecrawl scraper", zap.Error(err))
		}
	}

	acquisition := service.NewAcquisitionService(
		loader.NewDocumentLoader(),
		splitter.NewRecursiveSplitter(cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap),
		service.NewContentExtractor(urlScraper, searchClient),
		searchClient,
		cfg.Search.MaxResults,
	)
	analysis := service.NewAnalysisService(generator, nil, 0,
		cfg.Pipeline.MaxSummaryWords, cfg.Pipeline.NumKeyPoints, cfg.Pipeline.AnalysisContentMax)
	quiz := service.NewQuizService(generator, cfg.Pipeline.QuizContentMax)

	orchestrator := pipeline.NewOrchestrator(acquisition, analysis, quiz, tracker.NewSessionTracker(nil, 0))

	state := orchestrator.Run(context.Background(),
		domain.InputKind(*inputType), *inputData, *numQuestions, domain.Difficulty(*difficulty))

	printState(state)
	if !state.Succeeded() {
		os.Exit(1)
	}
}

func printState(st *pipeline.State) {
	fmt.Println("=== Summary ===")
	fmt.Println(st.Summary)
	fmt.Println()

	fmt.Println("=== Key Points ===")
	for i, p := range st.KeyPoints {
		fmt.Printf("%d. %s\n", i+1, p)
	}
	fmt.Println()

	fmt.Println("=== Quiz ===")
	for i, q := range st.QuizQuestions {
		fmt.Printf("Q%d (%s): %s\n", i+1, q.Difficulty, q.Question)
		letters := []string{"A", "B", "C", "D"}
		for j, opt := range q.Options {
			fmt.Printf("  %s. %s\n", letters[j], opt)
		}
		fmt.Printf("  Answer: %s\n  Explanation: %s\n\n", q.CorrectAnswer, q.Explanation)
	}

	fmt.Println("=== Trace ===")
	for _, m := range st.Messages {
		fmt.Println(m)
	}
	if st.Error != "" {
		fmt.Printf("\nError: %s\n", st.Error)
	}
}

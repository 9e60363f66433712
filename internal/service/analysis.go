package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"studybyte/internal/cache"
	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SummaryFailedSentinel replaces the summary when either analysis sub-task
// fails. Both outputs are reset together, even if only one sub-task failed.
const SummaryFailedSentinel = "Summary generation failed."

const summarySystemPrompt = `You are an expert educational content summarizer.
Create a clear, concise summary that captures the main ideas and essential information.
Focus on key concepts, important facts, and main arguments.
The summary should be suitable for students studying this material.`

const keyPointsSystemPrompt = `You are an expert at identifying key learning points from educational content.
Extract the most important concepts, facts, and ideas that students should remember.
Each key point should be clear, concise, and self-contained.`

// AnalysisService generates a summary and key points for combined chunk text.
// The two generation requests run concurrently and are joined before the
// result is visible to the caller.
type AnalysisService struct {
	generator       domain.TextGenerator
	resultCache     domain.Cache
	cacheTTL        time.Duration
	maxSummaryWords int
	numKeyPoints    int
	contentMax      int
}

// NewAnalysisService creates the analysis stage service. resultCache may be
// nil, which disables caching.
func NewAnalysisService(generator domain.TextGenerator, resultCache domain.Cache, cacheTTL time.Duration, maxSummaryWords, numKeyPoints, contentMax int) *AnalysisService {
	return &AnalysisService{
		generator:       generator,
		resultCache:     resultCache,
		cacheTTL:        cacheTTL,
		maxSummaryWords: maxSummaryWords,
		numKeyPoints:    numKeyPoints,
		contentMax:      contentMax,
	}
}

type analysisResult struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Analyze returns (summary, keyPoints, err). On failure the sentinel summary
// and empty key points are returned alongside the error so the pipeline stage
// can record all three.
func (s *AnalysisService) Analyze(ctx context.Context, content string) (string, []string, error) {
	content = TruncateContent(content, s.contentMax)

	cacheKey := s.cacheKey(content)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		logger.Get().Debug("Analysis cache hit", zap.String("key", cacheKey))
		return cached.Summary, cached.KeyPoints, nil
	}

	var summary string
	var keyPoints []string

	// The two sub-tasks write disjoint results and are joined before either
	// is read, so no locking is needed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.generator.Generate(gctx, summarySystemPrompt, s.summaryPrompt(content), 0.3)
		if err != nil {
			return fmt.Errorf("summary generation: %w", err)
		}
		summary = strings.TrimSpace(text)
		return nil
	})
	g.Go(func() error {
		text, err := s.generator.Generate(gctx, keyPointsSystemPrompt, s.keyPointsPrompt(content), 0.3)
		if err != nil {
			return fmt.Errorf("key point extraction: %w", err)
		}
		keyPoints = ParseKeyPoints(text, s.numKeyPoints)
		return nil
	})

	if err := g.Wait(); err != nil {
		return SummaryFailedSentinel, []string{}, domain.NewGenerationFailedError(err)
	}
	if keyPoints == nil {
		keyPoints = []string{}
	}

	s.toCache(ctx, cacheKey, analysisResult{Summary: summary, KeyPoints: keyPoints})
	return summary, keyPoints, nil
}

func (s *AnalysisService) summaryPrompt(content string) string {
	return fmt.Sprintf("Summarize the following content in approximately %d words:\n\n%s\n\nSummary:", s.maxSummaryWords, content)
}

func (s *AnalysisService) keyPointsPrompt(content string) string {
	return fmt.Sprintf("Extract %d key learning points from the following content.\nFormat each point as a clear, concise statement.\n\nContent:\n%s\n\nProvide the key points as a numbered list.", s.numKeyPoints, content)
}

func (s *AnalysisService) cacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return cache.GenerateCacheKey("analysis", "result", hex.EncodeToString(sum[:]),
		strconv.Itoa(s.maxSummaryWords), strconv.Itoa(s.numKeyPoints))
}

func (s *AnalysisService) fromCache(ctx context.Context, key string) (*analysisResult, bool) {
	if s.resultCache == nil {
		return nil, false
	}
	raw, err := s.resultCache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Analysis cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var result analysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.Get().Warn("Analysis cache entry corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *AnalysisService) toCache(ctx context.Context, key string, result analysisResult) {
	if s.resultCache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.resultCache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		logger.Get().Warn("Analysis cache write failed", zap.Error(err))
	}
}

// TruncateContent bounds content length before submission to the generator,
// appending an ellipsis marker when truncation happened.
func TruncateContent(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	return content[:max] + "..."
}

// ParseKeyPoints filters raw generated text down to key point lines. A line
// qualifies if, after trimming, it starts with a digit, a dash, or a bullet;
// leading enumeration punctuation is stripped. At most limit points are kept.
func ParseKeyPoints(raw string, limit int) []string {
	points := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := []rune(line)[0]
		if !unicode.IsDigit(first) && first != '-' && first != '•' {
			continue
		}
		point := strings.TrimLeft(line, "0123456789.-•) ")
		point = strings.TrimSpace(point)
		if point != "" {
			points = append(points, point)
		}
	}
	if len(points) > limit {
		points = points[:limit]
	}
	return points
}

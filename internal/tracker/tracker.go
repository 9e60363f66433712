package tracker

import (
	"context"
	"strconv"
	"time"

	"studybyte/internal/cache"
	"studybyte/internal/domain"
	"studybyte/internal/logger"
	"studybyte/internal/pipeline"
	"studybyte/internal/util"

	"go.uber.org/zap"
)

// SessionTracker records per-run session metrics: every run is logged, and
// when a cache is configured the stats are also mirrored into a hash there so
// an operator can inspect recent sessions.
type SessionTracker struct {
	store domain.Cache
	ttl   time.Duration
}

// NewSessionTracker creates a tracker. store may be nil, in which case only
// logging happens.
func NewSessionTracker(store domain.Cache, ttl time.Duration) *SessionTracker {
	return &SessionTracker{store: store, ttl: ttl}
}

// StartRun allocates a run identifier.
func (t *SessionTracker) StartRun() string {
	return util.NewULID()
}

// LogRun records the outcome of one pipeline run.
func (t *SessionTracker) LogRun(ctx context.Context, state *pipeline.State, duration time.Duration) {
	logger.Get().Info("Study session completed",
		zap.String("run_id", state.RunID),
		zap.String("input_kind", string(state.InputKind)),
		zap.Int("num_questions", state.NumQuestions),
		zap.String("difficulty", string(state.Difficulty)),
		zap.Duration("processing_time", duration),
		zap.Int("summary_length", len(state.Summary)),
		zap.Int("num_key_points", len(state.KeyPoints)),
		zap.Int("num_chunks", len(state.StudyMaterials)),
		zap.Bool("success", state.Succeeded()),
	)

	if t.store == nil || state.RunID == "" {
		return
	}

	key := cache.GenerateCacheKey("tracker", "session", state.RunID)
	fields := map[string]string{
		"input_kind":      string(state.InputKind),
		"difficulty":      string(state.Difficulty),
		"num_questions":   strconv.Itoa(state.NumQuestions),
		"duration_ms":     strconv.FormatInt(duration.Milliseconds(), 10),
		"summary_length":  strconv.Itoa(len(state.Summary)),
		"num_key_points":  strconv.Itoa(len(state.KeyPoints)),
		"num_chunks":      strconv.Itoa(len(state.StudyMaterials)),
		"success":         strconv.FormatBool(state.Succeeded()),
	}
	for field, value := range fields {
		if err := t.store.HSet(ctx, key, field, value); err != nil {
			logger.Get().Warn("Failed to record session stats", zap.Error(err))
			return
		}
	}
	if err := t.store.Expire(ctx, key, t.ttl); err != nil {
		logger.Get().Warn("Failed to set session stats expiry", zap.Error(err))
	}
}

var _ pipeline.Tracker = (*SessionTracker)(nil)

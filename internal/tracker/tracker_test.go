package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"studybyte/internal/domain"
	"studybyte/internal/pipeline"

	"github.com/stretchr/testify/assert"
)

type recordingCache struct {
	mu      sync.Mutex
	hashes  map[string]map[string]string
	expired map[string]time.Duration
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		hashes:  map[string]map[string]string{},
		expired: map[string]time.Duration{},
	}
}

func (c *recordingCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}

func (c *recordingCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return nil
}

func (c *recordingCache) HSet(ctx context.Context, key, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hashes[key] == nil {
		c.hashes[key] = map[string]string{}
	}
	c.hashes[key][field] = value
	return nil
}

func (c *recordingCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expired[key] = expiration
	return nil
}

func (c *recordingCache) Ping(ctx context.Context) error { return nil }

func TestStartRunProducesUniqueIDs(t *testing.T) {
	tr := NewSessionTracker(nil, 0)
	a := tr.StartRun()
	b := tr.StartRun()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestLogRunRecordsSessionHash(t *testing.T) {
	store := newRecordingCache()
	tr := NewSessionTracker(store, time.Hour)

	state := &pipeline.State{
		InputKind:      domain.InputText,
		NumQuestions:   5,
		Difficulty:     domain.DifficultyMixed,
		RunID:          "01RUNID",
		Summary:        "a summary",
		KeyPoints:      []string{"one", "two"},
		StudyMaterials: []domain.StudyMaterial{{Content: "chunk"}},
	}
	tr.LogRun(context.Background(), state, 1500*time.Millisecond)

	key := "studybyte:tracker:session:01RUNID"
	fields := store.hashes[key]
	assert.Equal(t, "text", fields["input_kind"])
	assert.Equal(t, "mixed", fields["difficulty"])
	assert.Equal(t, "5", fields["num_questions"])
	assert.Equal(t, "1500", fields["duration_ms"])
	assert.Equal(t, "9", fields["summary_length"])
	assert.Equal(t, "2", fields["num_key_points"])
	assert.Equal(t, "1", fields["num_chunks"])
	assert.Equal(t, "true", fields["success"])
	assert.Equal(t, time.Hour, store.expired[key])
}

func TestLogRunRecordsFailure(t *testing.T) {
	store := newRecordingCache()
	tr := NewSessionTracker(store, time.Hour)

	state := &pipeline.State{
		InputKind: domain.InputURL,
		RunID:     "01RUNID",
		Error:     "extraction failed",
	}
	tr.LogRun(context.Background(), state, time.Second)

	fields := store.hashes["studybyte:tracker:session:01RUNID"]
	assert.Equal(t, "false", fields["success"])
}

func TestLogRunWithoutStoreOrRunID(t *testing.T) {
	// Nil store only logs.
	assert.NotPanics(t, func() {
		NewSessionTracker(nil, 0).LogRun(context.Background(), &pipeline.State{RunID: "x"}, time.Second)
	})

	// A run without an ID is not mirrored to the cache.
	store := newRecordingCache()
	NewSessionTracker(store, time.Hour).LogRun(context.Background(), &pipeline.State{}, time.Second)
	assert.Empty(t, store.hashes)
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"go.uber.org/zap"
)

// Acquirer produces normalized raw text plus chunked study materials for an input.
type Acquirer interface {
	Acquire(ctx context.Context, kind domain.InputKind, payload string) (string, []domain.StudyMaterial, error)
}

// Analyzer produces a summary and key points for combined chunk text.
// On failure it returns its sentinel summary and empty key points together
// with the error, so the stage can record both.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (string, []string, error)
}

// QuizSynthesizer recovers exactly numQuestions well-formed questions from the
// generation collaborator, padding with placeholders as needed. The returned
// slice always has length numQuestions, even when err is non-nil.
type QuizSynthesizer interface {
	Synthesize(ctx context.Context, content string, keyPoints []string, numQuestions int, difficulty domain.Difficulty) ([]domain.QuizQuestion, error)
}

// Tracker records per-run session metrics. It is optional.
type Tracker interface {
	StartRun() string
	LogRun(ctx context.Context, state *State, duration time.Duration)
}

// Orchestrator drives the fixed stage sequence over one State per run.
type Orchestrator struct {
	acquirer    Acquirer
	analyzer    Analyzer
	synthesizer QuizSynthesizer
	tracker     Tracker
}

func NewOrchestrator(acquirer Acquirer, analyzer Analyzer, synthesizer QuizSynthesizer, tracker Tracker) *Orchestrator {
	return &Orchestrator{
		acquirer:    acquirer,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		tracker:     tracker,
	}
}

type stageFunc func(ctx context.Context, st *State) error

type stage struct {
	step     Step
	startMsg string
	run      stageFunc
}

// Run executes the full pipeline. It never returns an error: every stage
// failure is captured on the State and subsequent stages still execute, so the
// caller always receives a well-formed State.
func (o *Orchestrator) Run(ctx context.Context, kind domain.InputKind, payload string, numQuestions int, difficulty domain.Difficulty) *State {
	st := NewState(kind, payload, numQuestions, difficulty)
	if o.tracker != nil {
		st.RunID = o.tracker.StartRun()
	}
	start := time.Now()

	stages := []stage{
		{StepLoadingContent, fmt.Sprintf("Loading content from %s...", kind), o.loadContent},
		{StepProcessingDocuments, "Processing documents...", o.processDocuments},
		{StepAnalyzingContent, "Analyzing content...", o.analyzeContent},
		{StepGeneratingQuiz, "Generating quiz questions...", o.generateQuiz},
		{StepFinalizing, "Finalizing results...", o.finalize},
	}

	for _, s := range stages {
		o.runStage(ctx, st, s)
	}

	if o.tracker != nil {
		o.tracker.LogRun(ctx, st, time.Since(start))
	}
	return st
}

// runStage executes one stage, converting both returned errors and panics into
// a recorded failure on the State. A failing stage overwrites State.Error.
func (o *Orchestrator) runStage(ctx context.Context, st *State, s stage) {
	st.CurrentStep = s.step
	st.AppendMessage(s.startMsg)

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("stage panicked: %v", r)
			}
		}()
		return s.run(ctx, st)
	}()

	if err != nil {
		st.Error = err.Error()
		st.AppendMessage(fmt.Sprintf("✗ Error in %s: %s", s.step, err.Error()))
		logger.Get().Warn("Pipeline stage failed",
			zap.String("step", s.step.String()),
			zap.String("run_id", st.RunID),
			zap.Error(err))
	}
}

func (o *Orchestrator) loadContent(ctx context.Context, st *State) error {
	raw, materials, err := o.acquirer.Acquire(ctx, st.InputKind, st.InputPayload)
	if err != nil {
		return err
	}
	st.RawContent = raw
	st.StudyMaterials = materials
	st.AppendMessage(fmt.Sprintf("✓ Content loaded: %d characters", len(st.RawContent)))
	return nil
}

func (o *Orchestrator) processDocuments(ctx context.Context, st *State) error {
	totalChars := 0
	for _, m := range st.StudyMaterials {
		totalChars += len(m.Content)
	}
	st.AppendMessage(fmt.Sprintf("✓ Processed into %d chunks (%d characters)", len(st.StudyMaterials), totalChars))
	return nil
}

func (o *Orchestrator) analyzeContent(ctx context.Context, st *State) error {
	contents := make([]string, 0, len(st.StudyMaterials))
	for _, m := range st.StudyMaterials {
		contents = append(contents, m.Content)
	}
	combined := strings.Join(contents, "\n\n")

	summary, keyPoints, err := o.analyzer.Analyze(ctx, combined)
	st.Summary = summary
	st.KeyPoints = keyPoints
	if err != nil {
		return err
	}
	st.AppendMessage(fmt.Sprintf("✓ Summary generated (%d chars)", len(summary)))
	st.AppendMessage(fmt.Sprintf("✓ Extracted %d key points", len(keyPoints)))
	return nil
}

func (o *Orchestrator) generateQuiz(ctx context.Context, st *State) error {
	// Prefer the summary as quiz source material; fall back to the raw
	// content when analysis produced nothing usable.
	content := st.Summary
	if content == "" {
		content = st.RawContent
	}

	questions, err := o.synthesizer.Synthesize(ctx, content, st.KeyPoints, st.NumQuestions, st.Difficulty)
	// Append, never replace: a retried run must not drop earlier questions.
	st.QuizQuestions = append(st.QuizQuestions, questions...)
	if err != nil {
		return err
	}
	st.AppendMessage(fmt.Sprintf("✓ Generated %d quiz questions", len(questions)))
	return nil
}

func (o *Orchestrator) finalize(ctx context.Context, st *State) error {
	st.AppendMessage("✓ Study assistant processing complete!")
	return nil
}

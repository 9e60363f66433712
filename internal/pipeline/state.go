package pipeline

import "studybyte/internal/domain"

// Step names the stage currently executing, for progress reporting.
type Step string

const (
	StepInitialized         Step = "initialized"
	StepLoadingContent      Step = "loading_content"
	StepProcessingDocuments Step = "processing_documents"
	StepAnalyzingContent    Step = "analyzing_content"
	StepGeneratingQuiz      Step = "generating_quiz"
	StepFinalizing          Step = "finalizing"
)

func (s Step) String() string {
	return string(s)
}

// State is the single mutable record threaded through the pipeline stages.
// One run owns one State exclusively; it is discarded when the run ends.
//
// Error holds the message of the most recent stage failure: a later failing
// stage overwrites it (last-stage-wins). Messages keeps the full ordered
// history of every stage outcome.
type State struct {
	// Input, immutable after creation
	InputKind    domain.InputKind `json:"input_kind"`
	InputPayload string           `json:"input_payload"`
	NumQuestions int              `json:"num_questions"`
	Difficulty   domain.Difficulty `json:"difficulty"`

	// Processing
	RawContent     string                 `json:"raw_content"`
	StudyMaterials []domain.StudyMaterial `json:"study_materials"`
	Summary        string                 `json:"summary"`
	KeyPoints      []string               `json:"key_points"`
	QuizQuestions  []domain.QuizQuestion  `json:"quiz_questions"`

	// Tracking
	RunID       string   `json:"run_id,omitempty"`
	CurrentStep Step     `json:"current_step"`
	Error       string   `json:"error,omitempty"`
	Messages    []string `json:"messages"`
}

// NewState initializes a fresh run state with all accumulation fields empty.
func NewState(kind domain.InputKind, payload string, numQuestions int, difficulty domain.Difficulty) *State {
	return &State{
		InputKind:      kind,
		InputPayload:   payload,
		NumQuestions:   numQuestions,
		Difficulty:     difficulty,
		StudyMaterials: []domain.StudyMaterial{},
		KeyPoints:      []string{},
		QuizQuestions:  []domain.QuizQuestion{},
		CurrentStep:    StepInitialized,
		Messages:       []string{},
	}
}

// AppendMessage adds one entry to the audit trail.
func (s *State) AppendMessage(msg string) {
	s.Messages = append(s.Messages, msg)
}

// Succeeded reports whether the run finished without any stage recording an error.
func (s *State) Succeeded() bool {
	return s.Error == ""
}

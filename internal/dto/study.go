package dto

import (
	"studybyte/internal/domain"
	"studybyte/internal/pipeline"
)

// StudyRequest is the body for POST /api/study-sessions
type StudyRequest struct {
	InputType    string `json:"input_type"`
	InputData    string `json:"input_data"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// QuizQuestionResponse represents one generated question in the API response
type QuizQuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// StudyResponse is the externally consumed result of one pipeline run
type StudyResponse struct {
	RunID     string                 `json:"run_id,omitempty"`
	Summary   string                 `json:"summary"`
	KeyPoints []string               `json:"key_points"`
	Quiz      []QuizQuestionResponse `json:"quiz"`
	Messages  []string               `json:"messages"`
	Error     string                 `json:"error,omitempty"`
}

// HealthResponse reports service and collaborator readiness
type HealthResponse struct {
	Status          string `json:"status"`
	SearchAvailable bool   `json:"search_available"`
	CacheAvailable  bool   `json:"cache_available"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromState maps a terminal pipeline state onto the response contract.
// Only summary, key points, quiz, messages and error are exposed.
func FromState(st *pipeline.State) *StudyResponse {
	quiz := make([]QuizQuestionResponse, 0, len(st.QuizQuestions))
	for _, q := range st.QuizQuestions {
		quiz = append(quiz, fromQuestion(q))
	}
	return &StudyResponse{
		RunID:     st.RunID,
		Summary:   st.Summary,
		KeyPoints: st.KeyPoints,
		Quiz:      quiz,
		Messages:  st.Messages,
		Error:     st.Error,
	}
}

func fromQuestion(q domain.QuizQuestion) QuizQuestionResponse {
	return QuizQuestionResponse{
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    string(q.Difficulty),
	}
}

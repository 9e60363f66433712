package domain

import "strings"

// InputKind identifies how study content is supplied to the pipeline.
type InputKind string

const (
	InputFile   InputKind = "file"
	InputText   InputKind = "text"
	InputURL    InputKind = "url"
	InputSearch InputKind = "search"
)

// Valid reports whether the kind is one of the four supported literals.
func (k InputKind) Valid() bool {
	switch k {
	case InputFile, InputText, InputURL, InputSearch:
		return true
	}
	return false
}

// Difficulty is a requested quiz difficulty. "mixed" is only valid as a request
// parameter; individual questions always carry a concrete level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// ValidRequest reports whether the difficulty may appear in a run request.
func (d Difficulty) ValidRequest() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

// ValidLevel reports whether the difficulty is a concrete per-question level.
func (d Difficulty) ValidLevel() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// StudyMaterial is one bounded chunk of source text with provenance metadata.
// It is immutable once produced by the acquisition dispatcher.
type StudyMaterial struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Topic   string `json:"topic,omitempty"`
}

// SourceDirectInput labels materials that came from raw text input.
const SourceDirectInput = "direct_input"

// QuizQuestion is a single multiple-choice question. Options always has
// exactly four entries, including placeholder questions.
type QuizQuestion struct {
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
}

// NumOptions is the required option count for every question.
const NumOptions = 4

// Validate checks the structural invariants of a recovered question. A question
// failing validation is discarded by the recovery scan, never surfaced.
func (q *QuizQuestion) Validate() bool {
	if strings.TrimSpace(q.Question) == "" {
		return false
	}
	if len(q.Options) != NumOptions {
		return false
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return false
		}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return false
	}
	if !q.Difficulty.ValidLevel() {
		return false
	}
	return q.correctAnswerMatchesOptions()
}

// correctAnswerMatchesOptions accepts either the letter convention ("A".."D")
// or the literal text of one of the options.
func (q *QuizQuestion) correctAnswerMatchesOptions() bool {
	answer := strings.TrimSpace(q.CorrectAnswer)
	if answer == "" {
		return false
	}
	switch strings.ToUpper(answer) {
	case "A", "B", "C", "D":
		return true
	}
	for _, opt := range q.Options {
		if strings.EqualFold(answer, strings.TrimSpace(opt)) {
			return true
		}
	}
	return false
}

// Document is a unit of loaded or fetched content before chunking.
type Document struct {
	Content  string
	Metadata map[string]string
}

// Metadata keys used across extractors and loaders.
const (
	MetaSource    = "source"
	MetaTitle     = "title"
	MetaExtractor = "extractor"
)

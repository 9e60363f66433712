package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"studybyte/internal/domain"
)

// Output recovery for quiz generation.
//
// The generation collaborator returns free-form text with JSON-shaped
// fragments interleaved. Recovery runs in two phases: a brace-matching scan
// that collects candidate substrings (tolerating one level of nested braces),
// then a schema-validating parse that silently discards anything malformed.
// Whatever falls short of the requested count is padded with deterministic
// placeholders, so the returned length is always exactly numQuestions.
//
// The scan counts braces inside JSON string values too. That matches the
// upstream output style this was tuned against; revisit here first if a
// different model starts emitting braces in question text.

// ScanCandidates returns JSON-object-shaped substrings of raw in order of
// appearance. Objects nested deeper than one level abandon the outer
// candidate and restart the scan at the inner brace.
func ScanCandidates(raw string) []string {
	var candidates []string
	depth := 0
	start := -1
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
			if depth > 2 {
				start = i
				depth = 1
			}
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				candidates = append(candidates, raw[start:i+1])
				start = -1
			}
		}
	}
	return candidates
}

// parseCandidate attempts a schema-validating parse of one candidate.
func parseCandidate(candidate string) (domain.QuizQuestion, bool) {
	var q domain.QuizQuestion
	if err := json.Unmarshal([]byte(candidate), &q); err != nil {
		return domain.QuizQuestion{}, false
	}
	q.Difficulty = domain.Difficulty(strings.ToLower(strings.TrimSpace(string(q.Difficulty))))
	if !q.Validate() {
		return domain.QuizQuestion{}, false
	}
	return q, true
}

// RecoverQuestions extracts up to numQuestions valid questions from raw and
// pads the remainder with placeholders. The result length is unconditionally
// numQuestions.
func RecoverQuestions(raw string, numQuestions int) []domain.QuizQuestion {
	questions := make([]domain.QuizQuestion, 0, numQuestions)
	for _, candidate := range ScanCandidates(raw) {
		if len(questions) == numQuestions {
			break
		}
		if q, ok := parseCandidate(candidate); ok {
			questions = append(questions, q)
		}
	}
	for len(questions) < numQuestions {
		questions = append(questions, PlaceholderQuestion(len(questions)))
	}
	return questions
}

// PlaceholderQuestion builds the deterministic structural filler used when
// recovery falls short. index is the question's zero-based position in the
// final sequence.
func PlaceholderQuestion(index int) domain.QuizQuestion {
	return domain.QuizQuestion{
		Question: fmt.Sprintf("Question %d: Based on the study material, what is an important concept to understand?", index+1),
		Options: []string{
			"Option A - Review the material for details",
			"Option B - Refer to key points",
			"Option C - Study the content carefully",
			"Option D - All of the above",
		},
		CorrectAnswer: "D",
		Explanation:   "This is a placeholder question. Please review the study material.",
		Difficulty:    domain.DifficultyMedium,
	}
}

package service

import (
	"context"
	"fmt"
	"strings"

	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"go.uber.org/zap"
)

const quizSystemPrompt = `You are an expert educator creating quiz questions for students.
Generate high-quality multiple-choice questions that test understanding of the material.

Guidelines:
- Questions should test comprehension, not just memorization
- Include 4 options (A, B, C, D) for each question
- Make distractors (wrong answers) plausible but clearly incorrect
- Provide clear explanations for correct answers
- Vary difficulty levels appropriately

Return each question as a JSON object with these fields:
{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "A", "explanation": "...", "difficulty": "easy|medium|hard"}`

// QuizService builds one generation request from summary and key points and
// recovers exactly the requested number of questions from the response.
type QuizService struct {
	generator  domain.TextGenerator
	contentMax int
}

func NewQuizService(generator domain.TextGenerator, contentMax int) *QuizService {
	return &QuizService{generator: generator, contentMax: contentMax}
}

// Synthesize returns exactly numQuestions questions. When the generation
// collaborator fails outright the full sequence is deterministic placeholders
// and the error is returned alongside it for the caller to record.
func (s *QuizService) Synthesize(ctx context.Context, content string, keyPoints []string, numQuestions int, difficulty domain.Difficulty) ([]domain.QuizQuestion, error) {
	// Quiz generation degrades under long contexts, so the bound here is
	// tighter than the analysis one.
	content = TruncateContent(content, s.contentMax)

	raw, err := s.generator.Generate(ctx, quizSystemPrompt, s.prompt(content, keyPoints, numQuestions, difficulty), 0.7)
	if err != nil {
		logger.Get().Error("Quiz generation call failed, padding with placeholders",
			zap.Int("num_questions", numQuestions),
			zap.Error(err))
		return RecoverQuestions("", numQuestions), domain.NewGenerationFailedError(err)
	}

	questions := RecoverQuestions(raw, numQuestions)
	return questions, nil
}

func (s *QuizService) prompt(content string, keyPoints []string, numQuestions int, difficulty domain.Difficulty) string {
	var bullets strings.Builder
	for _, p := range keyPoints {
		bullets.WriteString("- ")
		bullets.WriteString(p)
		bullets.WriteString("\n")
	}

	difficultyLine := string(difficulty)
	if difficulty == domain.DifficultyMixed {
		difficultyLine = "mixed (vary the difficulty across questions)"
	}

	return fmt.Sprintf(`Based on the following study material and key points, generate %d quiz questions.

Difficulty level: %s

Key Points:
%s
Content:
%s

Generate %d high-quality quiz questions. For each question, provide:
1. The question text
2. Four multiple choice options (A, B, C, D)
3. The correct answer (A, B, C, or D)
4. A clear explanation
5. Difficulty level (easy, medium, or hard)

Return each question in the specified JSON format, one per line.`,
		numQuestions, difficultyLine, bullets.String(), content, numQuestions)
}

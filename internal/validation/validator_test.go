package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStudyRequestAccepts(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateStudyRequest("text", "some material", 5, "mixed", false))
	assert.Empty(t, v.ValidateStudyRequest("url", "https://example.com", 1, "easy", false))
	assert.Empty(t, v.ValidateStudyRequest("search", "quantum entanglement", 20, "", false))
	assert.Empty(t, v.ValidateStudyRequest("file", "/tmp/notes.pdf", 5, "hard", true))
}

func TestValidateStudyRequestRejects(t *testing.T) {
	v := NewValidator()

	t.Run("MissingInputType", func(t *testing.T) {
		errs := v.ValidateStudyRequest("", "data", 5, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "input_type", errs[0].Field)
	})

	t.Run("UnknownInputType", func(t *testing.T) {
		errs := v.ValidateStudyRequest("podcast", "data", 5, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "file, text, url, search")
	})

	t.Run("FileKindOnJSONRoute", func(t *testing.T) {
		errs := v.ValidateStudyRequest("file", "/tmp/notes.pdf", 5, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "input_type", errs[0].Field)
		assert.Contains(t, errs[0].Message, "file upload endpoint")
	})

	t.Run("MissingInputData", func(t *testing.T) {
		errs := v.ValidateStudyRequest("text", "   ", 5, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "input_data", errs[0].Field)
	})

	t.Run("OversizedInputData", func(t *testing.T) {
		errs := v.ValidateStudyRequest("text", strings.Repeat("a", MaxPayloadLength+1), 5, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "input_data", errs[0].Field)
	})

	t.Run("QuestionCountBounds", func(t *testing.T) {
		errs := v.ValidateStudyRequest("text", "data", 0, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "num_questions", errs[0].Field)

		errs = v.ValidateStudyRequest("text", "data", 21, "mixed", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "num_questions", errs[0].Field)
	})

	t.Run("UnknownDifficulty", func(t *testing.T) {
		errs := v.ValidateStudyRequest("text", "data", 5, "brutal", false)
		assert.Len(t, errs, 1)
		assert.Equal(t, "difficulty", errs[0].Field)
	})

	t.Run("AccumulatesMultipleErrors", func(t *testing.T) {
		errs := v.ValidateStudyRequest("", "", 0, "brutal", false)
		assert.Len(t, errs, 4)
	})
}

package validation

import (
	"strings"

	"studybyte/internal/domain"
)

const (
	MinQuestions = 1
	MaxQuestions = 20

	// Payload bound keeps pathological requests out of the pipeline; file
	// paths, URLs and queries are all far below it.
	MaxPayloadLength = 100_000
)

// Validator provides request validation functionality
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStudyRequest validates the run parameters accepted at the boundary.
// fileAllowed is false for the JSON endpoint, where file input must go
// through the multipart upload route instead.
func (v *Validator) ValidateStudyRequest(inputType, inputData string, numQuestions int, difficulty string, fileAllowed bool) domain.ValidationErrors {
	var errs domain.ValidationErrors

	kind := domain.InputKind(inputType)
	if strings.TrimSpace(inputType) == "" {
		errs = append(errs, domain.NewMissingFieldError("input_type"))
	} else if !kind.Valid() {
		errs = append(errs, domain.NewInvalidValueError("input_type", inputType, "file, text, url, search"))
	} else if kind == domain.InputFile && !fileAllowed {
		errs = append(errs, domain.NewInvalidValueError("input_type", inputType, "text, url, search (use the file upload endpoint for files)"))
	}

	if strings.TrimSpace(inputData) == "" {
		errs = append(errs, domain.NewMissingFieldError("input_data"))
	} else if len(inputData) > MaxPayloadLength {
		errs = append(errs, domain.NewOutOfRangeError("input_data", len(inputData), 1, MaxPayloadLength))
	}

	if numQuestions < MinQuestions || numQuestions > MaxQuestions {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", numQuestions, MinQuestions, MaxQuestions))
	}

	if difficulty != "" && !domain.Difficulty(difficulty).ValidRequest() {
		errs = append(errs, domain.NewInvalidValueError("difficulty", difficulty, "easy, medium, hard, mixed"))
	}

	return errs
}

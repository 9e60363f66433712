package handler

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"studybyte/internal/domain"
	"studybyte/internal/dto"
	"studybyte/internal/logger"
	"studybyte/internal/pipeline"
	"studybyte/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PipelineRunner abstracts the orchestrator for the HTTP layer.
type PipelineRunner interface {
	Run(ctx context.Context, kind domain.InputKind, payload string, numQuestions int, difficulty domain.Difficulty) *pipeline.State
}

// StudyHandler handles study-session HTTP requests
type StudyHandler struct {
	runner              PipelineRunner
	validator           *validation.Validator
	search              domain.SearchClient
	cache               domain.Cache
	uploadDir           string
	defaultNumQuestions int
}

func NewStudyHandler(runner PipelineRunner, validator *validation.Validator, search domain.SearchClient, cache domain.Cache, uploadDir string, defaultNumQuestions int) *StudyHandler {
	return &StudyHandler{
		runner:              runner,
		validator:           validator,
		search:              search,
		cache:               cache,
		uploadDir:           uploadDir,
		defaultNumQuestions: defaultNumQuestions,
	}
}

// RegisterRoutes mounts the study endpoints under the given router.
func (h *StudyHandler) RegisterRoutes(api fiber.Router) {
	api.Get("/health", h.Health)
	api.Post("/study-sessions", h.CreateStudySession)
	api.Post("/study-sessions/file", h.CreateStudySessionFromFile)
}

// Health handles GET /api/health
func (h *StudyHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "healthy"}
	if h.search != nil {
		resp.SearchAvailable = h.search.Available()
	}
	if h.cache != nil {
		resp.CacheAvailable = h.cache.Ping(c.Context()) == nil
	}
	return c.JSON(resp)
}

// CreateStudySession handles POST /api/study-sessions for text, url and
// search inputs. File input goes through the multipart upload endpoint.
func (h *StudyHandler) CreateStudySession(c *fiber.Ctx) error {
	var req dto.StudyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	h.applyDefaults(&req)

	if errs := h.validator.ValidateStudyRequest(req.InputType, req.InputData, req.NumQuestions, req.Difficulty, false); len(errs) > 0 {
		return errs
	}

	state := h.runner.Run(c.Context(), domain.InputKind(req.InputType), req.InputData, req.NumQuestions, domain.Difficulty(req.Difficulty))
	return c.JSON(dto.FromState(state))
}

// CreateStudySessionFromFile handles POST /api/study-sessions/file. The
// upload is saved under the configured uploads directory and then run as a
// file input.
func (h *StudyHandler) CreateStudySessionFromFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	req := dto.StudyRequest{
		InputType:  string(domain.InputFile),
		Difficulty: c.FormValue("difficulty"),
	}
	if v := c.FormValue("num_questions"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "num_questions must be an integer")
		}
		req.NumQuestions = n
	}
	h.applyDefaults(&req)

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return domain.NewInternalError("failed to prepare upload directory", err)
	}
	path := filepath.Join(h.uploadDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, path); err != nil {
		return domain.NewInternalError("failed to save uploaded file", err)
	}
	logger.Get().Debug("Upload saved", zap.String("path", path))
	req.InputData = path

	if errs := h.validator.ValidateStudyRequest(req.InputType, req.InputData, req.NumQuestions, req.Difficulty, true); len(errs) > 0 {
		return errs
	}

	state := h.runner.Run(c.Context(), domain.InputFile, path, req.NumQuestions, domain.Difficulty(req.Difficulty))
	return c.JSON(dto.FromState(state))
}

func (h *StudyHandler) applyDefaults(req *dto.StudyRequest) {
	if req.NumQuestions == 0 {
		req.NumQuestions = h.defaultNumQuestions
	}
	if req.Difficulty == "" {
		req.Difficulty = string(domain.DifficultyMixed)
	}
}

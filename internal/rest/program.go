package rest

import (
	"context"
	"net/http"
	"time"

	"studyRecommender/domain"
	"studyRecommender/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProgramService interface {
	GetAllPrograms(ctx context.Context) ([]domain.Program, error)
	GetProgramByID(ctx context.Context, id uuid.UUID) (domain.Program, error)
	CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error)
	UpdateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error)
	DeleteProgram(ctx context.Context, id uuid.UUID) error
}

type ProgramHandler struct {
	programService ProgramService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProgramHandler(programService ProgramService, validate *validator.Validate) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
		validator:      validate,
		timeout:        10 * time.Second,
	}
}

type ProgramRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Skills      []string `json:"skills"`
}

func (r ProgramRequest) toDomain() *domain.Program {
	return &domain.Program{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		Skills:      r.Skills,
	}
}

func (h *ProgramHandler) GetAllPrograms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	programs, err := h.programService.GetAllPrograms(ctx)
	if err != nil {
		logger.Error("Failed to find all programs", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all programs",
		"programs": programs,
	})
}

func (h *ProgramHandler) GetProgramByID(c echo.Context) error {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid program id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	program, err := h.programService.GetProgramByID(ctx, programID)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get program",
		"program": program,
	})
}

func (h *ProgramHandler) CreateProgram(c echo.Context) error {
	var req ProgramRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProgram, err := h.programService.CreateProgram(ctx, req.toDomain())
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "program successfully created",
		"program": newProgram,
	})
}

func (h *ProgramHandler) UpdateProgram(c echo.Context) error {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid program id"})
	}

	var req ProgramRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	program := req.toDomain()
	program.ID = programID

	updatedProgram, err := h.programService.UpdateProgram(ctx, program)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update program",
		"program": updatedProgram,
	})
}

func (h *ProgramHandler) DeleteProgram(c echo.Context) error {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid program id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.programService.DeleteProgram(ctx, programID); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "program successfully deleted",
		"program_id": programID,
	})
}

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
	"gorm.io/datatypes"
)

type StudentService interface {
	CreateStudent(ctx context.Context, student *domain.Student) (domain.Student, error)
	GetStudentByID(ctx context.Context, id uuid.UUID) (domain.Student, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, update domain.StudentUpdate) (domain.Student, error)
}

type StudentHandler struct {
	studentService StudentService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewStudentHandler(studentService StudentService, validate *validator.Validate) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		validator:      validate,
		timeout:        10 * time.Second,
	}
}

type CreateStudentRequest struct {
	Name      string        `json:"name" validate:"required"`
	Email     string        `json:"email" validate:"required,email"`
	Interests []string      `json:"interests"`
	Grades    domain.Grades `json:"grades"`
}

type UpdateStudentRequest struct {
	Name      *string       `json:"name,omitempty" validate:"omitempty,min=1"`
	Interests []string      `json:"interests,omitempty"`
	Grades    domain.Grades `json:"grades,omitempty"`
}

func (h *StudentHandler) CreateStudent(c echo.Context) error {
	var req CreateStudentRequest

	if err := c.Bind(&req); err != nil {
		logger.Debug("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	student, err := h.studentService.CreateStudent(ctx, &domain.Student{
		Name:      req.Name,
		Email:     req.Email,
		Interests: req.Interests,
		Grades:    datatypes.NewJSONType(req.Grades),
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create student", "error", err)
		}
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "student successfully created",
		"student": student,
	})
}

func (h *StudentHandler) GetStudentByID(c echo.Context) error {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid student id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	student, err := h.studentService.GetStudentByID(ctx, studentID)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get student",
		"student": student,
	})
}

func (h *StudentHandler) UpdateStudent(c echo.Context) error {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid student id"})
	}

	var req UpdateStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	student, err := h.studentService.UpdateStudent(ctx, studentID, domain.StudentUpdate{
		Name:      req.Name,
		Interests: req.Interests,
		Grades:    req.Grades,
	})
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update student",
		"student": student,
	})
}

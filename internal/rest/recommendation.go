package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studyRecommender/domain"
	"studyRecommender/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate              *validator.Validate
		recommendationService RecommendationService
		defaultTopK           int
		maxTopK               int
		timeout               time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, studentID uuid.UUID, topK int) ([]domain.ProgramRecommendation, error)
		History(ctx context.Context, studentID uuid.UUID) ([]domain.Recommendation, error)
	}

	RecommendRequest struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
		TopK      *int   `json:"top_k" validate:"omitempty,min=1"`
	}
)

func NewRecommendationHandler(svc RecommendationService, validate *validator.Validate, defaultTopK, maxTopK int) *RecommendationHandler {
	return &RecommendationHandler{
		validate:              validate,
		recommendationService: svc,
		defaultTopK:           defaultTopK,
		maxTopK:               maxTopK,
		timeout:               10 * time.Second,
	}
}

// POST /api/v1/recommendations
// body: { "student_id": "...", "top_k": 5 }
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	topK := h.defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	if topK > h.maxTopK {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: fmt.Sprintf("top_k must be between 1 and %d", h.maxTopK)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendationService.Recommend(ctx, uuid.MustParse(req.StudentID), topK)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to recommend programs", "student_id", req.StudentID, "error", err)
		}
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/students/:id/recommendations
func (h *RecommendationHandler) History(c echo.Context) error {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid student id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendationService.History(ctx, studentID)
	if err != nil {
		logger.Error("Failed to load recommendation history", "student_id", studentID, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

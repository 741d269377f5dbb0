package rest

import (
	"context"
	"net/http"
	"time"

	"studyRecommender/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	FeedbackHandler struct {
		validate        *validator.Validate
		feedbackService FeedbackService
		timeout         time.Duration
	}

	FeedbackService interface {
		SubmitFeedback(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error)
	}

	FeedbackQuery struct {
		StudentID string `query:"student_id" validate:"required,uuid"`
	}

	FeedbackRequest struct {
		ProgramID string `json:"program_id" validate:"required,uuid"`
		Clicked   bool   `json:"clicked"`
		Accepted  bool   `json:"accepted"`
		Rating    *int   `json:"rating"`
	}
)

func NewFeedbackHandler(svc FeedbackService, validate *validator.Validate) *FeedbackHandler {
	return &FeedbackHandler{
		validate:        validate,
		feedbackService: svc,
		timeout:         10 * time.Second,
	}
}

// POST /api/v1/feedback?student_id=...
func (h *FeedbackHandler) Submit(c echo.Context) error {
	q := FeedbackQuery{StudentID: c.QueryParam("student_id")}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	fb, err := h.feedbackService.SubmitFeedback(ctx, &domain.Feedback{
		StudentID: uuid.MustParse(q.StudentID),
		ProgramID: uuid.MustParse(req.ProgramID),
		Clicked:   req.Clicked,
		Accepted:  req.Accepted,
		Rating:    req.Rating,
	})
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(fb))
}

package feedback

import (
	"context"
	"errors"
	"fmt"

	"studyRecommender/domain"
	"studyRecommender/pkg/logger"
	"studyRecommender/pkg/metrics"

	"github.com/google/uuid"
)

var ErrIDsRequired = errors.New("student_id and program_id are required")

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
}

type feedbackService struct {
	feedbackRepo FeedbackRepository
}

func NewFeedbackService(feedbackRepo FeedbackRepository) *feedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo}
}

// SubmitFeedback stores click/accept/rating signals. They are kept for
// analysis only and never feed back into ranking.
func (s *feedbackService) SubmitFeedback(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if fb.StudentID == uuid.Nil || fb.ProgramID == uuid.Nil {
		return nil, ErrIDsRequired
	}

	if fb.Rating != nil && (*fb.Rating < 1 || *fb.Rating > 5) {
		return nil, domain.ErrInvalidRating
	}

	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		logger.Error("failed to save feedback", "student_id", fb.StudentID, "program_id", fb.ProgramID, "error", err)
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	if fb.Clicked {
		metrics.FeedbackTotal.WithLabelValues("click").Inc()
	}
	if fb.Accepted {
		metrics.FeedbackTotal.WithLabelValues("accept").Inc()
	}
	if fb.Rating != nil {
		metrics.FeedbackTotal.WithLabelValues("rating").Inc()
	}

	logger.Debug("feedback recorded",
		"student_id", fb.StudentID,
		"program_id", fb.ProgramID,
		"clicked", fb.Clicked,
		"accepted", fb.Accepted,
	)

	return fb, nil
}

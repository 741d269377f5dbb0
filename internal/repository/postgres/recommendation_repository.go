package postgres

import (
	"context"
	"fmt"

	"studyRecommender/business/recommendation"
	"studyRecommender/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

var _ recommendation.RecommendationRepository = (*RecommendationRepository)(nil)

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

func (r *RecommendationRepository) CreateBatch(ctx context.Context, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(recs) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&recs).Error; err != nil {
		return fmt.Errorf("failed to save recommendations: %w", err)
	}

	return nil
}

// FindByStudent returns the newest rows first with their program loaded.
func (r *RecommendationRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var recs []domain.Recommendation
	err := r.DB.WithContext(ctx).
		Preload("Program").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return recs, nil
}

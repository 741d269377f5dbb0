package postgres

import (
	"context"
	"errors"

	"studyRecommender/business/recommendation"
	"studyRecommender/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	DB *gorm.DB
}

var _ recommendation.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) GetSettings(ctx context.Context, name string) (domain.RecommenderSettings, bool, error) {
	var settings domain.RecommenderSettings

	err := r.DB.WithContext(ctx).
		Where("name = ?", name).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecommenderSettings{}, false, nil
	}
	if err != nil {
		return domain.RecommenderSettings{}, false, err
	}

	return settings, true, nil
}

func (r *SettingsRepository) UpsertSettings(ctx context.Context, settings domain.RecommenderSettings) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"grade_threshold",
				"categorical_weight",
				"strength_weight",
				"explanation_terms",
				"idf_smoothing",
				"stop_words",
				"updated_at",
			}),
		}).
		Create(&settings).Error
}

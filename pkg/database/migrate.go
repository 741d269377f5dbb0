package database

import (
	"fmt"

	"studyRecommender/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Program{},
		&domain.Student{},
		&domain.Recommendation{},
		&domain.Feedback{},
		&domain.RecommenderSettings{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

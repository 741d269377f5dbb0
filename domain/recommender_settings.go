package domain

import (
	"time"

	"gorm.io/datatypes"
)

const DefaultSettingsName = "default"

// RecommenderSettings overrides engine tuning at runtime. Zero fields keep
// the configured defaults.
type RecommenderSettings struct {
	Name              string                      `gorm:"column:name;primaryKey" json:"name"`
	GradeThreshold    float64                     `gorm:"column:grade_threshold" json:"grade_threshold"`
	CategoricalWeight float64                     `gorm:"column:categorical_weight" json:"categorical_weight"`
	StrengthWeight    float64                     `gorm:"column:strength_weight" json:"strength_weight"`
	ExplanationTerms  int                         `gorm:"column:explanation_terms" json:"explanation_terms"`
	IDFSmoothing      float64                     `gorm:"column:idf_smoothing" json:"idf_smoothing"`
	StopWords         datatypes.JSONSlice[string] `gorm:"column:stop_words;type:jsonb" json:"stop_words"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RecommenderSettings) TableName() string {
	return "recommender_settings"
}

package recommendation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyRecommender/business/recommender"
	"studyRecommender/domain"
	"studyRecommender/pkg/logger"
)

const maxExplanationTerms = 20

var ErrInvalidSettings = errors.New("invalid recommender settings")

// read/write persisted engine tuning.
type SettingsRepository interface {
	GetSettings(ctx context.Context, name string) (domain.RecommenderSettings, bool, error)
	UpsertSettings(ctx context.Context, settings domain.RecommenderSettings) error
}

// loadConfig reads persisted settings, falling back to defaultCfg when none
// exist or the store fails.
func (s *Service) loadConfig(ctx context.Context) recommender.Config {
	if s.settingsRepo == nil {
		return s.defaultCfg
	}

	row, ok, err := s.settingsRepo.GetSettings(ctx, domain.DefaultSettingsName)
	if err != nil {
		logger.Warn("failed to load recommender settings, using defaults", "error", err)
		return s.defaultCfg
	}
	if !ok {
		return s.defaultCfg
	}

	return applySettings(s.defaultCfg, row)
}

func applySettings(base recommender.Config, row domain.RecommenderSettings) recommender.Config {
	cfg := base
	if row.GradeThreshold > 0 {
		cfg.GradeThreshold = row.GradeThreshold
	}
	if row.CategoricalWeight > 0 {
		cfg.CategoricalWeight = row.CategoricalWeight
	}
	if row.StrengthWeight > 0 {
		cfg.StrengthWeight = row.StrengthWeight
	}
	if row.ExplanationTerms > 0 {
		cfg.ExplanationTerms = row.ExplanationTerms
	}
	if row.IDFSmoothing > 0 {
		cfg.IDFSmoothing = row.IDFSmoothing
	}
	stop := make(map[string]struct{}, len(row.StopWords))
	for _, w := range row.StopWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			stop[w] = struct{}{}
		}
	}
	// a list of only blank words keeps the defaults
	if len(stop) > 0 {
		cfg.StopWords = stop
	}
	return cfg.Normalize()
}

// GetSettings returns the effective engine settings.
func (s *Service) GetSettings(ctx context.Context) (domain.RecommenderSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommenderSettings{}, fmt.Errorf("context error: %w", err)
	}

	cfg := s.loadConfig(ctx)
	stop := make([]string, 0, len(cfg.StopWords))
	for w := range cfg.StopWords {
		stop = append(stop, w)
	}

	return domain.RecommenderSettings{
		Name:              domain.DefaultSettingsName,
		GradeThreshold:    cfg.GradeThreshold,
		CategoricalWeight: cfg.CategoricalWeight,
		StrengthWeight:    cfg.StrengthWeight,
		ExplanationTerms:  cfg.ExplanationTerms,
		IDFSmoothing:      cfg.IDFSmoothing,
		StopWords:         sortedWords(stop),
	}, nil
}

func (s *Service) UpdateSettings(ctx context.Context, settings domain.RecommenderSettings) (domain.RecommenderSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommenderSettings{}, fmt.Errorf("context error: %w", err)
	}
	if s.settingsRepo == nil {
		return domain.RecommenderSettings{}, errors.New("settings store not configured")
	}

	if settings.GradeThreshold < 0 || settings.CategoricalWeight < 0 || settings.StrengthWeight < 0 ||
		settings.IDFSmoothing < 0 || settings.ExplanationTerms < 0 || settings.ExplanationTerms > maxExplanationTerms {
		return domain.RecommenderSettings{}, ErrInvalidSettings
	}

	settings.Name = domain.DefaultSettingsName
	if err := s.settingsRepo.UpsertSettings(ctx, settings); err != nil {
		return domain.RecommenderSettings{}, fmt.Errorf("failed to save recommender settings: %w", err)
	}

	logger.Info("recommender settings updated",
		"grade_threshold", settings.GradeThreshold,
		"categorical_weight", settings.CategoricalWeight,
		"strength_weight", settings.StrengthWeight,
		"explanation_terms", settings.ExplanationTerms,
	)

	return s.GetSettings(ctx)
}

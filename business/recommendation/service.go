package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studyRecommender/business/recommender"
	"studyRecommender/domain"
	"studyRecommender/pkg/logger"
	"studyRecommender/pkg/metrics"

	"github.com/google/uuid"
)

const historyLimit = 10

// ---- Repository interfaces ----

type StudentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Student, error)
}

type ProgramRepository interface {
	FindAll(ctx context.Context) ([]domain.Program, error)
}

type RecommendationRepository interface {
	CreateBatch(ctx context.Context, recs []domain.Recommendation) error
	FindByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]domain.Recommendation, error)
}

// ---- Service ----

type Service struct {
	studentRepo  StudentRepository
	programRepo  ProgramRepository
	recoRepo     RecommendationRepository
	settingsRepo SettingsRepository
	defaultCfg   recommender.Config
	cache        indexCache
}

func NewService(
	studentRepo StudentRepository,
	programRepo ProgramRepository,
	recoRepo RecommendationRepository,
	settingsRepo SettingsRepository,
	defaultCfg recommender.Config,
) *Service {
	return &Service{
		studentRepo:  studentRepo,
		programRepo:  programRepo,
		recoRepo:     recoRepo,
		settingsRepo: settingsRepo,
		defaultCfg:   defaultCfg.Normalize(),
	}
}

// Recommend ranks the current catalog for a student, stores the served
// results as history and returns them. Engine argument and validation
// errors are returned wrapped and unchanged in type.
func (s *Service) Recommend(ctx context.Context, studentID uuid.UUID, topK int) ([]domain.ProgramRecommendation, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		metrics.RecommendTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	programs, err := s.programRepo.FindAll(ctx)
	if err != nil {
		metrics.RecommendTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load programs: %w", err)
	}
	if len(programs) == 0 {
		metrics.RecommendTotal.WithLabelValues("empty_catalog").Inc()
		return []domain.ProgramRecommendation{}, nil
	}

	cfg := s.loadConfig(ctx)
	engine := recommender.NewEngine(cfg)

	idx, err := s.index(engine, programs)
	if err != nil {
		metrics.RecommendTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	results, err := engine.Recommend(idx, toProfile(student), topK)
	if err != nil {
		metrics.RecommendTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("rank programs: %w", err)
	}

	// Display fields come from the current rows; the cached index only keys
	// on fields that change a fit.
	byID := make(map[string]domain.Program, len(programs))
	for _, p := range programs {
		byID[p.ID.String()] = p
	}

	out := make([]domain.ProgramRecommendation, 0, len(results))
	history := make([]domain.Recommendation, 0, len(results))
	for _, r := range results {
		program := byID[r.Program.ID]
		out = append(out, domain.ProgramRecommendation{
			ProgramID:          program.ID,
			ProgramName:        program.Name,
			ProgramDescription: program.Description,
			Score:              r.Score,
			Explanation:        r.Explanation,
			Matches:            r.Matches,
			Tags:               nonNil(program.Tags),
			Skills:             nonNil(program.Skills),
		})
		history = append(history, domain.Recommendation{
			StudentID:   student.ID,
			ProgramID:   program.ID,
			Score:       r.Score,
			Explanation: r.Explanation,
			Algorithm:   domain.AlgorithmContentBased,
		})
		metrics.RecommendScore.Observe(r.Score)
	}

	if len(history) > 0 {
		if err := s.recoRepo.CreateBatch(ctx, history); err != nil {
			metrics.RecommendTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("save recommendations: %w", err)
		}
	}

	metrics.RecommendTotal.WithLabelValues("ok").Inc()
	logger.Debug("recommend",
		"trace_id", TraceIDFromContext(ctx),
		"student_id", student.ID,
		"top_k", topK,
		"catalog_size", len(programs),
		"results", len(out),
	)

	return out, nil
}

// History returns the most recent recommendations served to a student.
func (s *Service) History(ctx context.Context, studentID uuid.UUID) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	recs, err := s.recoRepo.FindByStudent(ctx, studentID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load recommendation history: %w", err)
	}
	return recs, nil
}

// Warmup fits the current catalog so the first request hits the cache.
func (s *Service) Warmup(ctx context.Context) error {
	programs, err := s.programRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load programs: %w", err)
	}
	if len(programs) == 0 {
		logger.Info("catalog empty, skipping index warmup")
		return nil
	}

	engine := recommender.NewEngine(s.loadConfig(ctx))
	idx, err := s.index(engine, programs)
	if err != nil {
		return err
	}

	logger.Info("program index ready", "programs", idx.Len(), "vocabulary", len(idx.Vocabulary()))
	return nil
}

func (s *Service) index(engine *recommender.Engine, programs []domain.Program) (*recommender.FittedIndex, error) {
	records := toRecords(programs)
	key := fingerprint(records, engine.Config())

	idx, hit, err := s.cache.get(key, func() (*recommender.FittedIndex, error) {
		idx, err := engine.Fit(records)
		if err != nil {
			return nil, err
		}
		metrics.IndexFitsTotal.Inc()
		metrics.IndexVocabularySize.Set(float64(len(idx.Vocabulary())))
		logger.Debug("program index fitted", "programs", idx.Len(), "fingerprint", key)
		return idx, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fit program index: %w", err)
	}
	if hit {
		metrics.IndexCacheHitsTotal.Inc()
	}
	return idx, nil
}

func toRecords(programs []domain.Program) []recommender.ProgramRecord {
	records := make([]recommender.ProgramRecord, 0, len(programs))
	for _, p := range programs {
		id := ""
		if p.ID != uuid.Nil {
			id = p.ID.String()
		}
		records = append(records, recommender.ProgramRecord{
			ID:          id,
			Name:        p.Name,
			Description: p.Description,
			Tags:        []string(p.Tags),
			Skills:      []string(p.Skills),
		})
	}
	return records
}

func toProfile(s domain.Student) recommender.StudentProfile {
	return recommender.StudentProfile{
		ID:        s.ID.String(),
		Interests: []string(s.Interests),
		Grades:    s.Grades.Data(),
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func sortedWords(words []string) []string {
	sort.Strings(words)
	return words
}

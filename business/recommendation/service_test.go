package recommendation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"studyRecommender/business/recommender"
	"studyRecommender/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeStudents struct {
	students map[uuid.UUID]domain.Student
}

func (f *fakeStudents) FindByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return domain.Student{}, domain.ErrStudentNotFound
	}
	return s, nil
}

type fakePrograms struct {
	mu       sync.Mutex
	programs []domain.Program
	err      error
}

func (f *fakePrograms) FindAll(ctx context.Context) ([]domain.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Program, len(f.programs))
	copy(out, f.programs)
	return out, nil
}

func (f *fakePrograms) set(programs []domain.Program) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.programs = programs
}

type fakeHistory struct {
	mu        sync.Mutex
	saved     []domain.Recommendation
	lastLimit int
	err       error
}

func (f *fakeHistory) CreateBatch(ctx context.Context, recs []domain.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, recs...)
	return nil
}

func (f *fakeHistory) FindByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	var out []domain.Recommendation
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if f.saved[i].StudentID == studentID {
			out = append(out, f.saved[i])
		}
	}
	return out, nil
}

type fakeSettings struct {
	row    domain.RecommenderSettings
	found  bool
	getErr error
}

func (f *fakeSettings) GetSettings(ctx context.Context, name string) (domain.RecommenderSettings, bool, error) {
	if f.getErr != nil {
		return domain.RecommenderSettings{}, false, f.getErr
	}
	return f.row, f.found, nil
}

func (f *fakeSettings) UpsertSettings(ctx context.Context, settings domain.RecommenderSettings) error {
	f.row = settings
	f.found = true
	return nil
}

var (
	dataProgramID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	artProgramID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	bioProgramID  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	studentID     = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
)

func testCatalog() []domain.Program {
	return []domain.Program{
		{
			ID:          dataProgramID,
			Name:        "Data Analytics",
			Description: "data analytics program",
			Tags:        datatypes.JSONSlice[string]{"data", "python"},
			Skills:      datatypes.JSONSlice[string]{"sql"},
		},
		{
			ID:          artProgramID,
			Name:        "Visual Arts",
			Description: "visual arts program",
			Tags:        datatypes.JSONSlice[string]{"art", "design"},
			Skills:      datatypes.JSONSlice[string]{"drawing"},
		},
	}
}

type fixture struct {
	svc      *Service
	programs *fakePrograms
	history  *fakeHistory
	settings *fakeSettings
}

func newFixture() *fixture {
	students := &fakeStudents{students: map[uuid.UUID]domain.Student{
		studentID: {
			ID:        studentID,
			Name:      "Ana",
			Email:     "ana@example.com",
			Interests: datatypes.JSONSlice[string]{"data"},
			Grades:    datatypes.NewJSONType(domain.Grades{"math": 95}),
		},
	}}
	programs := &fakePrograms{programs: testCatalog()}
	history := &fakeHistory{}
	settings := &fakeSettings{}

	return &fixture{
		svc:      NewService(students, programs, history, settings, recommender.DefaultConfig()),
		programs: programs,
		history:  history,
		settings: settings,
	}
}

func TestRecommend_RanksAndStoresHistory(t *testing.T) {
	f := newFixture()

	recs, err := f.svc.Recommend(context.Background(), studentID, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, dataProgramID, recs[0].ProgramID)
	assert.Equal(t, "Data Analytics", recs[0].ProgramName)
	assert.Greater(t, recs[0].Score, 0.0)
	assert.Contains(t, recs[0].Matches, "data")
	assert.Equal(t, 0.0, recs[1].Score)
	assert.Equal(t, recommender.NoMatchExplanation, recs[1].Explanation)
	assert.NotNil(t, recs[1].Matches)

	require.Len(t, f.history.saved, 2)
	for i, h := range f.history.saved {
		assert.Equal(t, studentID, h.StudentID)
		assert.Equal(t, recs[i].ProgramID, h.ProgramID)
		assert.Equal(t, recs[i].Score, h.Score)
		assert.Equal(t, domain.AlgorithmContentBased, h.Algorithm)
	}
}

func TestRecommend_TruncatesToTopK(t *testing.T) {
	f := newFixture()

	recs, err := f.svc.Recommend(context.Background(), studentID, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, dataProgramID, recs[0].ProgramID)
	assert.Len(t, f.history.saved, 1)
}

func TestRecommend_StudentNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Recommend(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)
	assert.Empty(t, f.history.saved)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	f := newFixture()
	f.programs.set(nil)

	recs, err := f.svc.Recommend(context.Background(), studentID, 5)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.Empty(t, f.history.saved)
}

func TestRecommend_InvalidTopK(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Recommend(context.Background(), studentID, 0)
	var argErr *recommender.InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "top_k", argErr.Argument)
}

func TestRecommend_CatalogErrorIsWrapped(t *testing.T) {
	f := newFixture()
	f.programs.err = errors.New("connection refused")

	_, err := f.svc.Recommend(context.Background(), studentID, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load programs")
}

func TestRecommend_HistoryErrorFailsRequest(t *testing.T) {
	f := newFixture()
	f.history.err = errors.New("disk full")

	_, err := f.svc.Recommend(context.Background(), studentID, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save recommendations")
}

func TestRecommend_ReusesIndexUntilCatalogChanges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Recommend(ctx, studentID, 5)
	require.NoError(t, err)
	first := f.svc.cache.current.Load()
	require.NotNil(t, first)

	_, err = f.svc.Recommend(ctx, studentID, 5)
	require.NoError(t, err)
	assert.Same(t, first, f.svc.cache.current.Load())

	catalog := testCatalog()
	catalog = append(catalog, domain.Program{
		ID:          bioProgramID,
		Name:        "Biology",
		Description: "cells and genetics",
		Tags:        datatypes.JSONSlice[string]{"biology"},
	})
	f.programs.set(catalog)

	recs, err := f.svc.Recommend(ctx, studentID, 5)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	second := f.svc.cache.current.Load()
	assert.NotSame(t, first, second)
	assert.Equal(t, 3, second.index.Len())
	assert.Equal(t, 2, first.index.Len())
}

func TestRecommend_ConcurrentRequestsAgree(t *testing.T) {
	f := newFixture()

	const workers = 16
	results := make([][]domain.ProgramRecommendation, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.svc.Recommend(context.Background(), studentID, 5)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
	assert.Len(t, f.history.saved, 2*workers)
}

func TestRecommend_UsesPersistedSettings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// math 95 is a strength under the default threshold but not above 99.
	f.programs.set([]domain.Program{{
		ID:          dataProgramID,
		Name:        "Applied Math",
		Description: "math modelling",
	}})

	recs, err := f.svc.Recommend(ctx, studentID, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Greater(t, recs[0].Score, 0.0)

	f.settings.row = domain.RecommenderSettings{Name: domain.DefaultSettingsName, GradeThreshold: 99}
	f.settings.found = true

	recs, err = f.svc.Recommend(ctx, studentID, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0.0, recs[0].Score)
}

func TestRecommend_SettingsErrorFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	f.settings.getErr = errors.New("timeout")

	recs, err := f.svc.Recommend(context.Background(), studentID, 5)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestHistory_UsesLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := f.svc.Recommend(ctx, studentID, 2)
		require.NoError(t, err)
	}

	recs, err := f.svc.History(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, historyLimit, f.history.lastLimit)
	assert.Len(t, recs, historyLimit)
}

func TestWarmup_FitsCatalog(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.Warmup(context.Background()))
	cached := f.svc.cache.current.Load()
	require.NotNil(t, cached)
	assert.Equal(t, 2, cached.index.Len())

	_, err := f.svc.Recommend(context.Background(), studentID, 5)
	require.NoError(t, err)
	assert.Same(t, cached, f.svc.cache.current.Load())
}

func TestWarmup_EmptyCatalog(t *testing.T) {
	f := newFixture()
	f.programs.set(nil)

	require.NoError(t, f.svc.Warmup(context.Background()))
	assert.Nil(t, f.svc.cache.current.Load())
}

func TestSettings_GetReturnsDefaults(t *testing.T) {
	f := newFixture()

	got, err := f.svc.GetSettings(context.Background())
	require.NoError(t, err)

	def := recommender.DefaultConfig()
	assert.Equal(t, domain.DefaultSettingsName, got.Name)
	assert.Equal(t, def.GradeThreshold, got.GradeThreshold)
	assert.Equal(t, def.CategoricalWeight, got.CategoricalWeight)
	assert.Equal(t, def.ExplanationTerms, got.ExplanationTerms)
	assert.Len(t, got.StopWords, len(def.StopWords))
	assert.IsNonDecreasing(t, []string(got.StopWords))
}

func TestSettings_UpdateValidatesAndPersists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateSettings(ctx, domain.RecommenderSettings{ExplanationTerms: maxExplanationTerms + 1})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	_, err = f.svc.UpdateSettings(ctx, domain.RecommenderSettings{GradeThreshold: -1})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	got, err := f.svc.UpdateSettings(ctx, domain.RecommenderSettings{
		GradeThreshold: 70,
		StopWords:      datatypes.JSONSlice[string]{" The ", "and", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.GradeThreshold)
	assert.Equal(t, recommender.DefaultConfig().CategoricalWeight, got.CategoricalWeight)
	assert.Equal(t, []string{"and", "the"}, []string(got.StopWords))
	assert.Equal(t, domain.DefaultSettingsName, f.settings.row.Name)
}

func TestFingerprint_IgnoresCatalogOrder(t *testing.T) {
	cfg := recommender.DefaultConfig()
	records := toRecords(testCatalog())
	reversed := []recommender.ProgramRecord{records[1], records[0]}

	assert.Equal(t, fingerprint(records, cfg), fingerprint(reversed, cfg))

	changed := toRecords(testCatalog())
	changed[0].Description = "something else"
	assert.NotEqual(t, fingerprint(records, cfg), fingerprint(changed, cfg))

	cfg.CategoricalWeight = 7
	assert.NotEqual(t, fingerprint(records, recommender.DefaultConfig()), fingerprint(records, cfg))
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "req-42")
	assert.Equal(t, "req-42", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}

func TestRecommend_RenamedProgramServesCurrentName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Recommend(ctx, studentID, 5)
	require.NoError(t, err)
	cached := f.svc.cache.current.Load()

	catalog := testCatalog()
	catalog[0].Name = "Renamed Analytics"
	f.programs.set(catalog)

	recs, err := f.svc.Recommend(ctx, studentID, 5)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Same(t, cached, f.svc.cache.current.Load())
	assert.Equal(t, dataProgramID, recs[0].ProgramID)
	assert.Equal(t, "Renamed Analytics", recs[0].ProgramName)
}

func TestApplySettings_BlankStopWordsKeepDefaults(t *testing.T) {
	base := recommender.DefaultConfig()

	cfg := applySettings(base, domain.RecommenderSettings{
		StopWords: datatypes.JSONSlice[string]{"  ", ""},
	})
	assert.Equal(t, base.StopWords, cfg.StopWords)
	assert.Contains(t, cfg.StopWords, "the")

	cfg = applySettings(base, domain.RecommenderSettings{
		StopWords: datatypes.JSONSlice[string]{" Foo "},
	})
	assert.Equal(t, map[string]struct{}{"foo": {}}, cfg.StopWords)
}

package recommender

type Config struct {
	// StopWords are dropped after tokenization, both at fit and query time.
	StopWords map[string]struct{}

	// tag/skill/interest token weight relative to a free-text description word
	CategoricalWeight float64

	// weight of a strong-subject token (grade above GradeThreshold)
	StrengthWeight float64

	// Zero or negative means unset and falls back to the default of 80. To
	// count every positive grade as a strength use a small positive value.
	GradeThreshold float64

	// max shared terms cited per explanation
	ExplanationTerms int

	// s in idf = log((s + N) / (s + df)) + 1
	IDFSmoothing float64
}

const (
	defaultCategoricalWeight = 3.0
	defaultStrengthWeight    = 3.0
	defaultGradeThreshold    = 80.0
	defaultExplanationTerms  = 5
	defaultIDFSmoothing      = 1.0
)

var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "have", "in", "into", "is", "it", "its", "of", "on", "or",
	"that", "the", "their", "this", "to", "was", "were", "will", "with",
	"you", "your", "our", "we", "program", "programs", "course", "courses",
	"study", "students", "student",
}

// DefaultStopWords returns a fresh copy of the built-in stop-word set.
func DefaultStopWords() map[string]struct{} {
	out := make(map[string]struct{}, len(defaultStopWords))
	for _, w := range defaultStopWords {
		out[w] = struct{}{}
	}
	return out
}

func DefaultConfig() Config {
	return Config{
		StopWords:         DefaultStopWords(),
		CategoricalWeight: defaultCategoricalWeight,
		StrengthWeight:    defaultStrengthWeight,
		GradeThreshold:    defaultGradeThreshold,
		ExplanationTerms:  defaultExplanationTerms,
		IDFSmoothing:      defaultIDFSmoothing,
	}
}

// Normalize replaces unset or non-positive parameters with their defaults.
// A GradeThreshold of 0 is treated as unset. A nil StopWords map gets the
// default set; an empty non-nil map disables
// stop-word filtering.
func (c Config) Normalize() Config {
	if c.StopWords == nil {
		c.StopWords = DefaultStopWords()
	}
	if c.CategoricalWeight <= 0 {
		c.CategoricalWeight = defaultCategoricalWeight
	}
	if c.StrengthWeight <= 0 {
		c.StrengthWeight = defaultStrengthWeight
	}
	if c.GradeThreshold <= 0 {
		c.GradeThreshold = defaultGradeThreshold
	}
	if c.ExplanationTerms <= 0 {
		c.ExplanationTerms = defaultExplanationTerms
	}
	if c.IDFSmoothing <= 0 {
		c.IDFSmoothing = defaultIDFSmoothing
	}
	return c
}

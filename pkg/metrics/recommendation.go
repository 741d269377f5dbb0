package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommend service call, catalog load through persistence
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "study_recommend_latency_seconds",
		Help:    "Latency of study program recommendations",
		Buckets: prometheus.DefBuckets,
	})

	RecommendTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "study_recommend_total",
		Help: "Recommendation requests by outcome",
	}, []string{"outcome"})

	// Score of every returned recommendation, zero-score matches included
	RecommendScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "study_recommend_score",
		Help:    "Distribution of returned recommendation scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	IndexFitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "study_index_fits_total",
		Help: "How many times the program index was refit",
	})

	IndexCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "study_index_cache_hits_total",
		Help: "Recommendations served from the cached program index",
	})

	IndexVocabularySize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "study_index_vocabulary_size",
		Help: "Number of terms in the most recently fitted index",
	})

	FeedbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "study_feedback_total",
		Help: "Feedback events by kind",
	}, []string{"kind"})
)

func Init() {
	Register(prometheus.DefaultRegisterer)
}

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		RecommendDuration,
		RecommendTotal,
		RecommendScore,
		IndexFitsTotal,
		IndexCacheHitsTotal,
		IndexVocabularySize,
		FeedbackTotal,
	)
}

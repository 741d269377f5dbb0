package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Recommender RecommenderConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type JWTConfig struct {
	SecretKey string
}

// RecommenderConfig holds engine defaults. Zero values fall back to the
// engine's built-in defaults; persisted settings override these per request.
type RecommenderConfig struct {
	GradeThreshold    float64
	CategoricalWeight float64
	StrengthWeight    float64
	ExplanationTerms  int
	IDFSmoothing      float64
	DefaultTopK       int
	MaxTopK           int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	intVal := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	floatVal := func(key string, def float64) float64 {
		v, err := getEnvFloat(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Study Program Recommender API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "study_recommender"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: intVal("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: intVal("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnv("DB_AUTO_MIGRATE", "false") == "true",
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Recommender: RecommenderConfig{
			// 0 or below means "use the engine default" (80)
			GradeThreshold:    floatVal("RECO_GRADE_THRESHOLD", 80),
			CategoricalWeight: floatVal("RECO_CATEGORICAL_WEIGHT", 3),
			StrengthWeight:    floatVal("RECO_STRENGTH_WEIGHT", 3),
			ExplanationTerms:  intVal("RECO_EXPLANATION_TERMS", 5),
			IDFSmoothing:      floatVal("RECO_IDF_SMOOTHING", 1),
			DefaultTopK:       intVal("RECO_DEFAULT_TOP_K", 5),
			MaxTopK:           intVal("RECO_MAX_TOP_K", 50),
		},
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Recommender.DefaultTopK <= 0 || cfg.Recommender.MaxTopK < cfg.Recommender.DefaultTopK {
		return nil, errors.New("invalid recommender top_k bounds")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

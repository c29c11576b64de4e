package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig    `mapstructure:"server"`
	Catalog        CatalogConfig   `mapstructure:"catalog"`
	Redis          RedisConfig     `mapstructure:"redis"`
	Kafka          KafkaConfig     `mapstructure:"kafka"`
	Auth           AuthConfig      `mapstructure:"auth"`
	Logging        LoggingConfig   `mapstructure:"logging"`
	Recommendation AlgorithmConfig `mapstructure:"recommendation"`
	Security       SecurityConfig  `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type CatalogConfig struct {
	// Source selects where the snapshot comes from: "file" or "postgres".
	Source         string        `mapstructure:"source"`
	DataDir        string        `mapstructure:"data_dir"`
	PostgresURL    string        `mapstructure:"postgres_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	// URL empty disables the recommendation store.
	URL                string        `mapstructure:"url"`
	MaxRetries         int           `mapstructure:"max_retries"`
	PoolSize           int           `mapstructure:"pool_size"`
	Timeout            time.Duration `mapstructure:"timeout"`
	RecommendationsTTL time.Duration `mapstructure:"recommendations_ttl"`
}

type KafkaConfig struct {
	// Brokers empty disables event publication.
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AuthConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AlgorithmConfig carries the scoring model. The defaults reproduce the
// production weights: similarity 0.30/0.40/0.15/0.15 and recommendation
// points 40/30/30 clamped at 100.
type AlgorithmConfig struct {
	Similarity    SimilarityWeights `mapstructure:"similarity"`
	Scoring       ScoringConfig     `mapstructure:"scoring"`
	NeighborLimit int               `mapstructure:"neighbor_limit"`
	DefaultCount  int               `mapstructure:"default_count"`
	TrendLimit    int               `mapstructure:"trend_limit"`
}

type SimilarityWeights struct {
	Hobby     float64 `mapstructure:"hobby"`
	Category  float64 `mapstructure:"category"`
	Age       float64 `mapstructure:"age"`
	City      float64 `mapstructure:"city"`
	MaxAgeGap float64 `mapstructure:"max_age_gap"`
}

type ScoringConfig struct {
	NeighborPurchase float64 `mapstructure:"neighbor_purchase"`
	CategoryMatch    float64 `mapstructure:"category_match"`
	HobbyMatch       float64 `mapstructure:"hobby_match"`
	MinRating        float64 `mapstructure:"min_rating"`
	MaxScore         float64 `mapstructure:"max_score"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	viper.SetDefault("catalog.source", "file")
	viper.SetDefault("catalog.data_dir", "./data")
	viper.SetDefault("catalog.connect_timeout", "10s")

	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.timeout", "5s")
	viper.SetDefault("redis.recommendations_ttl", "15m")

	viper.SetDefault("kafka.topic", "recommendation-events")

	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.token_ttl", "24h")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	viper.SetDefault("recommendation.similarity.hobby", 0.30)
	viper.SetDefault("recommendation.similarity.category", 0.40)
	viper.SetDefault("recommendation.similarity.age", 0.15)
	viper.SetDefault("recommendation.similarity.city", 0.15)
	viper.SetDefault("recommendation.similarity.max_age_gap", 50.0)

	viper.SetDefault("recommendation.scoring.neighbor_purchase", 40.0)
	viper.SetDefault("recommendation.scoring.category_match", 30.0)
	viper.SetDefault("recommendation.scoring.hobby_match", 30.0)
	viper.SetDefault("recommendation.scoring.min_rating", 4.0)
	viper.SetDefault("recommendation.scoring.max_score", 100.0)

	viper.SetDefault("recommendation.neighbor_limit", 5)
	viper.SetDefault("recommendation.default_count", 5)
	viper.SetDefault("recommendation.trend_limit", 5)

	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}

// Defaults returns the built-in algorithm configuration without touching
// the process-wide viper state. Tests use it to get the production scoring
// model.
func Defaults() *AlgorithmConfig {
	return &AlgorithmConfig{
		Similarity: SimilarityWeights{
			Hobby:     0.30,
			Category:  0.40,
			Age:       0.15,
			City:      0.15,
			MaxAgeGap: 50.0,
		},
		Scoring: ScoringConfig{
			NeighborPurchase: 40.0,
			CategoryMatch:    30.0,
			HobbyMatch:       30.0,
			MinRating:        4.0,
			MaxScore:         100.0,
		},
		NeighborLimit: 5,
		DefaultCount:  5,
		TrendLimit:    5,
	}
}

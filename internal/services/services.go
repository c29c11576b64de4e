package services

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
)

type Services struct {
	Catalog        *catalog.Catalog
	Patterns       *PurchasePatternService
	Similarity     *SimilarityService
	Recommendation *RecommendationService
	Explanation    *ExplanationService
	Trends         *TrendService
	Stats          *StatsService
	Store          *RecommendationStore
	Health         *HealthService
}

func New(cfg *config.Config, logger *logrus.Logger, cat *catalog.Catalog, redisClient *redis.Client) *Services {
	patterns := NewPurchasePatternService(cat, logger)
	similarity := NewSimilarityService(cat, patterns, &cfg.Recommendation, logger)
	recommendation := NewRecommendationService(cat, patterns, similarity, &cfg.Recommendation, logger)
	explanation := NewExplanationService(cat, patterns, similarity, &cfg.Recommendation, logger)
	trends := NewTrendService(cat, similarity, &cfg.Recommendation, logger)
	stats := NewStatsService(cat, patterns, recommendation, &cfg.Recommendation, logger)
	store := NewRecommendationStore(redisClient, cfg.Redis.RecommendationsTTL, logger)
	health := NewHealthService(cat, redisClient, logger)

	return &Services{
		Catalog:        cat,
		Patterns:       patterns,
		Similarity:     similarity,
		Recommendation: recommendation,
		Explanation:    explanation,
		Trends:         trends,
		Stats:          stats,
		Store:          store,
		Health:         health,
	}
}

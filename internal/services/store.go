package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/pkg/models"
)

// RecommendationStore persists generated recommendations in redis, keyed by
// user id. Persistence is a courtesy for downstream consumers; the
// recommendation core never reads it back to answer a request. A nil client
// disables the store.
type RecommendationStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRecommendationStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RecommendationStore {
	return &RecommendationStore{
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RecommendationStore) Enabled() bool {
	return s.redis != nil
}

func recommendationKey(userID int) string {
	return fmt.Sprintf("recommendations:user:%d", userID)
}

// Save persists the user's recommendations. Empty result sets are not
// written; there is nothing useful to serve from them.
func (s *RecommendationStore) Save(ctx context.Context, userID int, recommendations []models.Recommendation) error {
	if !s.Enabled() || len(recommendations) == 0 {
		return nil
	}

	data, err := json.Marshal(recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := s.redis.Set(ctx, recommendationKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendations: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(recommendations),
	}).Debug("Recommendations persisted")

	return nil
}

// Load returns previously persisted recommendations, or nil when none
// exist or the store is disabled.
func (s *RecommendationStore) Load(ctx context.Context, userID int) ([]models.Recommendation, error) {
	if !s.Enabled() {
		return nil, nil
	}

	data, err := s.redis.Get(ctx, recommendationKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendations: %w", err)
	}

	var recommendations []models.Recommendation
	if err := json.Unmarshal(data, &recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode stored recommendations: %w", err)
	}
	return recommendations, nil
}

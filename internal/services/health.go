package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/pkg/models"
)

type HealthService struct {
	catalog *catalog.Catalog
	redis   *redis.Client
	logger  *logrus.Logger
}

func NewHealthService(cat *catalog.Catalog, redisClient *redis.Client, logger *logrus.Logger) *HealthService {
	return &HealthService{
		catalog: cat,
		redis:   redisClient,
		logger:  logger,
	}
}

// CheckHealth reports the catalog sizes and the state of the optional redis
// collaborator. A missing redis degrades the service but does not make it
// unhealthy: the recommendation core itself performs no I/O.
func (s *HealthService) CheckHealth() models.HealthStatus {
	status := models.HealthStatus{
		Status: "healthy",
		Components: map[string]string{
			"catalog": fmt.Sprintf("%d users, %d products, %d orders",
				len(s.catalog.Users()), len(s.catalog.Products()), len(s.catalog.Orders())),
		},
	}

	if s.redis == nil {
		status.Components["redis"] = "disabled"
		return status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redis.Ping(ctx).Err(); err != nil {
		s.logger.WithError(err).Warn("Redis health check failed")
		status.Status = "degraded"
		status.Components["redis"] = "unreachable"
		return status
	}

	status.Components["redis"] = "ok"
	return status
}

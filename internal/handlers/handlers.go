package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/messaging"
	"github.com/mercata/affinity/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	User           *UserHandler
	Trends         *TrendsHandler
}

func New(logger *logrus.Logger, svc *services.Services, events *messaging.EventPublisher, metrics *services.Metrics) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, svc.Health),
		Recommendation: NewRecommendationHandler(svc, events, metrics, logger),
		User:           NewUserHandler(svc, metrics, logger),
		Trends:         NewTrendsHandler(svc, logger),
	}
}

// pathID parses an integer id path parameter. A non-integer id is a 400
// before any service is involved.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Path parameter '" + name + "' must be a positive integer",
			},
		})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": gin.H{
			"code":    "NOT_FOUND",
			"message": message,
		},
	})
}

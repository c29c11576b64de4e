package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/messaging"
	"github.com/mercata/affinity/internal/services"
	"github.com/mercata/affinity/pkg/models"
)

type RecommendationHandler struct {
	services *services.Services
	events   *messaging.EventPublisher
	metrics  *services.Metrics
	logger   *logrus.Logger
}

func NewRecommendationHandler(
	svc *services.Services,
	events *messaging.EventPublisher,
	metrics *services.Metrics,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		services: svc,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

// Get serves GET /recommendations/:userId?count=N.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	count := 0
	if countStr := c.Query("count"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 && parsed <= 50 {
			count = parsed
		}
	}

	recommendations, err := h.services.Recommendation.Recommend(userID, count)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) {
			h.metrics.NotFoundResponses.Inc()
			notFound(c, "User not found")
			return
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to generate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_GENERATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
		return
	}

	h.metrics.RecommendationsGenerated.Inc()
	h.metrics.RecommendationsReturned.Observe(float64(len(recommendations)))

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		Recommendations: recommendations,
		GeneratedAt:     time.Now().UTC(),
	})
}

// Refresh serves POST /recommendations/:userId/refresh: recompute,
// persist to the store, and publish an event for downstream consumers.
func (h *RecommendationHandler) Refresh(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	recommendations, err := h.services.Recommendation.Recommend(userID, 0)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) {
			h.metrics.NotFoundResponses.Inc()
			notFound(c, "User not found")
			return
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to refresh recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_GENERATION_FAILED",
				"message": "Failed to refresh recommendations",
			},
		})
		return
	}

	ctx := c.Request.Context()
	if err := h.services.Store.Save(ctx, userID, recommendations); err != nil {
		// Persistence is best-effort; the fresh result is still returned.
		h.logger.WithError(err).WithField("user_id", userID).Warn("Failed to persist recommendations")
	}
	if err := h.events.PublishGenerated(ctx, userID, recommendations); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Warn("Failed to publish recommendation event")
	}

	h.metrics.RecommendationsGenerated.Inc()
	h.metrics.RecommendationsReturned.Observe(float64(len(recommendations)))

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		Recommendations: recommendations,
		GeneratedAt:     time.Now().UTC(),
	})
}

// Explain serves GET /recommendations/:userId/explanations/:productId.
func (h *RecommendationHandler) Explain(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	explanation, err := h.services.Explanation.Explain(userID, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) || errors.Is(err, catalog.ErrProductNotFound) {
			h.metrics.NotFoundResponses.Inc()
			notFound(c, "User or product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to explain recommendation")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "EXPLANATION_FAILED",
				"message": "Failed to explain recommendation",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ExplanationResponse{
		UserID:      userID,
		ProductID:   productID,
		Explanation: explanation,
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/services"
	"github.com/mercata/affinity/pkg/models"
)

type UserHandler struct {
	services *services.Services
	metrics  *services.Metrics
	logger   *logrus.Logger
}

func NewUserHandler(svc *services.Services, metrics *services.Metrics, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		services: svc,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetSimilarity serves GET /users/:userId/similarity/:otherId.
func (h *UserHandler) GetSimilarity(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	otherID, ok := pathID(c, "otherId")
	if !ok {
		return
	}

	similarity, err := h.services.Similarity.UserSimilarity(userID, otherID)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) {
			h.metrics.NotFoundResponses.Inc()
			notFound(c, "User not found")
			return
		}
		h.logger.WithError(err).Error("Failed to compute similarity")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "SIMILARITY_FAILED",
				"message": "Failed to compute similarity",
			},
		})
		return
	}

	h.metrics.SimilarityQueries.Inc()
	c.JSON(http.StatusOK, models.SimilarityResponse{
		UserID:      userID,
		OtherUserID: otherID,
		Similarity:  similarity,
	})
}

// GetNeighbors serves GET /users/:userId/neighbors?limit=N.
func (h *UserHandler) GetNeighbors(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	neighbors, err := h.services.Similarity.NearestNeighbors(userID, limit)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) {
			h.metrics.NotFoundResponses.Inc()
			notFound(c, "User not found")
			return
		}
		h.logger.WithError(err).Error("Failed to rank neighbors")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "NEIGHBOR_RANKING_FAILED",
				"message": "Failed to rank neighbors",
			},
		})
		return
	}

	h.metrics.SimilarityQueries.Inc()
	c.JSON(http.StatusOK, models.NeighborsResponse{
		UserID:    userID,
		Neighbors: neighbors,
	})
}

// GetPatterns serves GET /patterns. Patterns are keyed by user id
// internally; display names are attached here, at the presentation layer.
func (h *UserHandler) GetPatterns(c *gin.Context) {
	patterns := h.services.Patterns.AnalyzePurchasePatterns()

	type userPatterns struct {
		UserID     int            `json:"user_id"`
		UserName   string         `json:"user_name"`
		Categories map[string]int `json:"categories"`
	}

	response := make([]userPatterns, 0, len(patterns))
	for _, user := range h.services.Catalog.Users() {
		categories, ok := patterns[user.ID]
		if !ok {
			continue
		}
		response = append(response, userPatterns{
			UserID:     user.ID,
			UserName:   user.Name,
			Categories: categories,
		})
	}

	c.JSON(http.StatusOK, gin.H{"patterns": response})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/services"
)

type TrendsHandler struct {
	services *services.Services
	logger   *logrus.Logger
}

func NewTrendsHandler(svc *services.Services, logger *logrus.Logger) *TrendsHandler {
	return &TrendsHandler{
		services: svc,
		logger:   logger,
	}
}

// GetTrends serves GET /trends.
func (h *TrendsHandler) GetTrends(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Trends.PopularTrends())
}

// GetStats serves GET /stats.
func (h *TrendsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Stats.CatalogStats())
}

// GetEffectiveness serves GET /stats/effectiveness.
func (h *TrendsHandler) GetEffectiveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Stats.Effectiveness())
}

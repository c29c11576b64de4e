package services

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/pkg/models"
)

// StatsService summarizes the recommendation surface of the catalog and
// estimates how well generated recommendations would be received.
type StatsService struct {
	catalog         *catalog.Catalog
	patterns        *PurchasePatternService
	recommendations *RecommendationService
	config          *config.AlgorithmConfig
	logger          *logrus.Logger
}

func NewStatsService(
	cat *catalog.Catalog,
	patterns *PurchasePatternService,
	recommendations *RecommendationService,
	cfg *config.AlgorithmConfig,
	logger *logrus.Logger,
) *StatsService {
	return &StatsService{
		catalog:         cat,
		patterns:        patterns,
		recommendations: recommendations,
		config:          cfg,
		logger:          logger,
	}
}

// CatalogStats reports active users, recommendable products (in stock and
// rated at least the scoring threshold), their mean rating, and how many of
// them each user has not yet purchased.
func (s *StatsService) CatalogStats() models.CatalogStats {
	activeUsers := 0
	for _, user := range s.catalog.Users() {
		if user.Active {
			activeUsers++
		}
	}

	var recommendable []models.Product
	var ratings []float64
	for _, product := range s.catalog.Products() {
		if product.Stock > 0 && product.Rating >= s.config.Scoring.MinRating {
			recommendable = append(recommendable, product)
			ratings = append(ratings, product.Rating)
		}
	}

	meanRating := 0.0
	if len(ratings) > 0 {
		meanRating = stat.Mean(ratings, nil)
	}

	availability := make([]models.UserAvailability, 0, len(s.catalog.Users()))
	for _, user := range s.catalog.Users() {
		purchased := s.patterns.PurchasedProductIDs(user.ID)
		available := 0
		for _, product := range recommendable {
			if _, owned := purchased[product.ID]; !owned {
				available++
			}
		}
		availability = append(availability, models.UserAvailability{
			UserID:    user.ID,
			UserName:  user.Name,
			Available: available,
		})
	}

	return models.CatalogStats{
		ActiveUsers:           activeUsers,
		RecommendableProducts: len(recommendable),
		MeanRating:            meanRating,
		AvailablePerUser:      availability,
	}
}

// Effectiveness generates recommendations for every user and reports the
// share that meet the acceptance heuristic (in stock, rating at least the
// scoring threshold). Users with no recommendations are left out of the
// details and the mean.
func (s *StatsService) Effectiveness() models.EffectivenessReport {
	var details []models.UserEffectiveness
	var acceptances []float64

	for _, user := range s.catalog.Users() {
		recommendations, err := s.recommendations.Recommend(user.ID, s.config.DefaultCount)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("Skipping user in effectiveness report")
			continue
		}
		if len(recommendations) == 0 {
			continue
		}

		accepted := 0
		for _, rec := range recommendations {
			if rec.Product.Stock > 0 && rec.Product.Rating >= s.config.Scoring.MinRating {
				accepted++
			}
		}

		acceptance := float64(accepted) / float64(len(recommendations)) * 100
		acceptances = append(acceptances, acceptance)
		details = append(details, models.UserEffectiveness{
			UserID:          user.ID,
			UserName:        user.Name,
			Recommendations: len(recommendations),
			Accepted:        accepted,
			Acceptance:      acceptance,
		})
	}

	mean := 0.0
	if len(acceptances) > 0 {
		mean = stat.Mean(acceptances, nil)
	}

	return models.EffectivenessReport{
		MeanAcceptance: mean,
		Details:        details,
	}
}

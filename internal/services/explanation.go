package services

import (
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
)

// Explanation sentences, one per scoring rule plus a generic fallback. The
// first matching rule wins, in the same priority order the scorer uses.
const (
	ExplanationNeighborPurchase = "Recommended because users similar to you have purchased it."
	ExplanationCategoryMatch    = "Recommended because it belongs to your favorite categories and is highly rated."
	ExplanationHobbyMatch       = "Recommended because it is featured and matches your hobbies."
	ExplanationFallback         = "Recommended for you by the system."
)

// ExplanationService derives a single-sentence justification for
// recommending one product to one user.
type ExplanationService struct {
	catalog    *catalog.Catalog
	patterns   *PurchasePatternService
	similarity *SimilarityService
	config     *config.AlgorithmConfig
	logger     *logrus.Logger
}

func NewExplanationService(
	cat *catalog.Catalog,
	patterns *PurchasePatternService,
	similarity *SimilarityService,
	cfg *config.AlgorithmConfig,
	logger *logrus.Logger,
) *ExplanationService {
	return &ExplanationService{
		catalog:    cat,
		patterns:   patterns,
		similarity: similarity,
		config:     cfg,
		logger:     logger,
	}
}

// Explain returns the justification sentence for recommending the product
// to the user. Unknown ids fail with the catalog's NotFound errors so
// callers can distinguish a missing entity from the generic fallback.
func (s *ExplanationService) Explain(userID, productID int) (string, error) {
	user, err := s.catalog.UserByID(userID)
	if err != nil {
		return "", err
	}
	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return "", err
	}

	neighbors, err := s.similarity.NearestNeighbors(userID, s.config.NeighborLimit)
	if err != nil {
		return "", err
	}

	for _, neighbor := range neighbors {
		if s.userPurchased(neighbor.User.ID, productID) {
			return ExplanationNeighborPurchase, nil
		}
	}

	patterns := s.patterns.AnalyzePurchasePatterns()
	purchased := s.patterns.PurchasedProductIDs(userID)

	_, favored := patterns[userID][product.Category]
	_, owned := purchased[productID]
	if favored && product.Rating >= s.config.Scoring.MinRating && !owned {
		return ExplanationCategoryMatch, nil
	}

	if product.Featured && tagsMatchHobbies(product.Tags, foldSet(user.Hobbies)) {
		return ExplanationHobbyMatch, nil
	}

	return ExplanationFallback, nil
}

func (s *ExplanationService) userPurchased(userID, productID int) bool {
	for _, order := range s.catalog.OrdersByUser(userID) {
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}

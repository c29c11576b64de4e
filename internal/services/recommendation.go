package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/pkg/models"
)

// Reason strings attached to recommendations, in evaluation order.
const (
	ReasonNeighborPurchase = "bought by similar users"
	ReasonCategoryMatch    = "matches favorite category with high rating"
	ReasonHobbyMatch       = "featured and matches your hobbies"
)

// RecommendationService merges candidate products from three sources
// (neighbor purchases, favored categories, hobby-tag matches), scores them,
// and ranks the result. It holds no state across calls: every request is a
// pure function of the catalog snapshot.
type RecommendationService struct {
	catalog    *catalog.Catalog
	patterns   *PurchasePatternService
	similarity *SimilarityService
	config     *config.AlgorithmConfig
	logger     *logrus.Logger
}

func NewRecommendationService(
	cat *catalog.Catalog,
	patterns *PurchasePatternService,
	similarity *SimilarityService,
	cfg *config.AlgorithmConfig,
	logger *logrus.Logger,
) *RecommendationService {
	return &RecommendationService{
		catalog:    cat,
		patterns:   patterns,
		similarity: similarity,
		config:     cfg,
		logger:     logger,
	}
}

// Recommend returns at most count recommendations for the user, descending
// by score with stable tie order. Only products with positive stock
// survive, each product appears once, and every score is clamped to the
// configured maximum. An unknown user id fails with
// catalog.ErrUserNotFound.
func (s *RecommendationService) Recommend(userID, count int) ([]models.Recommendation, error) {
	user, err := s.catalog.UserByID(userID)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = s.config.DefaultCount
	}

	purchased := s.patterns.PurchasedProductIDs(userID)
	patterns := s.patterns.AnalyzePurchasePatterns()
	favoredCategories := categorySet(patterns[userID])
	hobbies := foldSet(user.Hobbies)

	neighbors, err := s.similarity.NearestNeighbors(userID, s.config.NeighborLimit)
	if err != nil {
		return nil, err
	}

	// Which neighbors bought which product, in neighbor rank order.
	neighborBuyers := s.neighborPurchases(neighbors)

	candidates := s.collectCandidates(purchased, favoredCategories, hobbies, neighbors)

	recommendations := make([]models.Recommendation, 0, len(candidates))
	for _, product := range candidates {
		rec := s.score(product, favoredCategories, hobbies, neighborBuyers[product.ID])
		if rec.Product.Stock > 0 {
			recommendations = append(recommendations, rec)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > count {
		recommendations = recommendations[:count]
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"candidates": len(candidates),
		"returned":   len(recommendations),
	}).Debug("Recommendations generated")

	return recommendations, nil
}

// neighborPurchases maps product id to the ids of neighbors who purchased
// it, preserving neighbor rank order. Unresolvable line items are ignored.
func (s *RecommendationService) neighborPurchases(neighbors []models.SimilarUser) map[int][]int {
	buyers := make(map[int][]int)
	for _, neighbor := range neighbors {
		seen := make(map[int]struct{})
		for _, order := range s.catalog.OrdersByUser(neighbor.User.ID) {
			for _, item := range order.Items {
				if _, err := s.catalog.ProductByID(item.ProductID); err != nil {
					continue
				}
				if _, dup := seen[item.ProductID]; dup {
					continue
				}
				seen[item.ProductID] = struct{}{}
				buyers[item.ProductID] = append(buyers[item.ProductID], neighbor.User.ID)
			}
		}
	}
	return buyers
}

// collectCandidates unions the three candidate sources, deduplicated by
// product id, preserving first-encounter order: neighbor purchases first,
// then favored-category products, then featured hobby matches.
func (s *RecommendationService) collectCandidates(
	purchased map[int]struct{},
	favoredCategories map[string]struct{},
	hobbies map[string]struct{},
	neighbors []models.SimilarUser,
) []*models.Product {
	var candidates []*models.Product
	seen := make(map[int]struct{})

	add := func(id int) {
		if _, dup := seen[id]; dup {
			return
		}
		product, err := s.catalog.ProductByID(id)
		if err != nil {
			return
		}
		seen[id] = struct{}{}
		candidates = append(candidates, product)
	}

	// Source A: everything any neighbor bought that the user has not.
	for _, neighbor := range neighbors {
		for _, order := range s.catalog.OrdersByUser(neighbor.User.ID) {
			for _, item := range order.Items {
				if _, owned := purchased[item.ProductID]; owned {
					continue
				}
				add(item.ProductID)
			}
		}
	}

	// Source B: highly rated products in the user's favored categories.
	products := s.catalog.Products()
	for i := range products {
		p := &products[i]
		if _, owned := purchased[p.ID]; owned {
			continue
		}
		if _, favored := favoredCategories[p.Category]; favored && p.Rating >= s.config.Scoring.MinRating {
			add(p.ID)
		}
	}

	// Source C: featured products whose tags match the user's hobbies.
	for i := range products {
		p := &products[i]
		if _, owned := purchased[p.ID]; owned {
			continue
		}
		if p.Featured && tagsMatchHobbies(p.Tags, hobbies) {
			add(p.ID)
		}
	}

	return candidates
}

// score accumulates the rule bonuses for one candidate. Reasons collect in
// the fixed evaluation order; the total is clamped to the configured
// maximum.
func (s *RecommendationService) score(
	product *models.Product,
	favoredCategories map[string]struct{},
	hobbies map[string]struct{},
	buyers []int,
) models.Recommendation {
	scoring := s.config.Scoring

	var score float64
	var reasons []string

	if len(buyers) > 0 {
		score += scoring.NeighborPurchase
		reasons = append(reasons, ReasonNeighborPurchase)
	}

	_, favored := favoredCategories[product.Category]
	if favored && product.Rating >= scoring.MinRating {
		score += scoring.CategoryMatch
		reasons = append(reasons, ReasonCategoryMatch)
	}

	if product.Featured && tagsMatchHobbies(product.Tags, hobbies) {
		score += scoring.HobbyMatch
		reasons = append(reasons, ReasonHobbyMatch)
	}

	if score > scoring.MaxScore {
		score = scoring.MaxScore
	}

	relatedCategory := ""
	if favored {
		relatedCategory = product.Category
	}

	return models.Recommendation{
		Product:         *product,
		Score:           score,
		Reasons:         reasons,
		NeighborUserIDs: buyers,
		RelatedCategory: relatedCategory,
	}
}

// tagsMatchHobbies reports whether any product tag case-folds to one of the
// user's hobbies.
func tagsMatchHobbies(tags []string, hobbies map[string]struct{}) bool {
	for _, tag := range tags {
		if _, ok := hobbies[fold(tag)]; ok {
			return true
		}
	}
	return false
}

package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/pkg/models"
)

// TrendService reports the most purchased products and categories across
// every user's neighborhood: for each user, quantities from their top
// neighbors' orders are summed, then ranked globally. Trends are therefore
// relative to neighborhoods, not to the whole population.
type TrendService struct {
	catalog    *catalog.Catalog
	similarity *SimilarityService
	config     *config.AlgorithmConfig
	logger     *logrus.Logger
}

func NewTrendService(
	cat *catalog.Catalog,
	similarity *SimilarityService,
	cfg *config.AlgorithmConfig,
	logger *logrus.Logger,
) *TrendService {
	return &TrendService{
		catalog:    cat,
		similarity: similarity,
		config:     cfg,
		logger:     logger,
	}
}

func (s *TrendService) PopularTrends() models.TrendReport {
	products := newOrderedCounter()
	categories := newOrderedCounter()

	for _, user := range s.catalog.Users() {
		neighbors, err := s.similarity.NearestNeighbors(user.ID, s.config.NeighborLimit)
		if err != nil {
			// Users come straight from the catalog, so this cannot be a
			// missing id; log and move on.
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("Skipping user in trend analysis")
			continue
		}

		for _, neighbor := range neighbors {
			for _, order := range s.catalog.OrdersByUser(neighbor.User.ID) {
				for _, item := range order.Items {
					product, err := s.catalog.ProductByID(item.ProductID)
					if err != nil {
						continue
					}
					products.add(product.Name, item.Quantity)
					categories.add(product.Category, item.Quantity)
				}
			}
		}
	}

	limit := s.config.TrendLimit
	return models.TrendReport{
		TopProducts:   products.top(limit),
		TopCategories: categories.top(limit),
	}
}

// orderedCounter counts by key while remembering first-encounter order so
// ranking ties break deterministically.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string, n int) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *orderedCounter) top(n int) []string {
	ranked := make([]string, len(c.order))
	copy(ranked, c.order)

	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

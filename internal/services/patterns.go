package services

import (
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
)

// PurchasePatternService aggregates per-user category purchase frequencies
// from the order history. Patterns are keyed by user id; display names are
// resolved only at the presentation layer.
type PurchasePatternService struct {
	catalog *catalog.Catalog
	logger  *logrus.Logger
}

func NewPurchasePatternService(cat *catalog.Catalog, logger *logrus.Logger) *PurchasePatternService {
	return &PurchasePatternService{
		catalog: cat,
		logger:  logger,
	}
}

// AnalyzePurchasePatterns returns, per user id, the cumulative quantity
// purchased in each category. An order whose user id is unknown is skipped
// entirely; a line item whose product id is unknown is skipped on its own.
// Users with zero resolvable lines get no entry.
func (s *PurchasePatternService) AnalyzePurchasePatterns() map[int]map[string]int {
	patterns := make(map[int]map[string]int)

	for _, order := range s.catalog.Orders() {
		user, err := s.catalog.UserByID(order.UserID)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"user_id":  order.UserID,
			}).Warn("Skipping order for unknown user")
			continue
		}

		for _, item := range order.Items {
			product, err := s.catalog.ProductByID(item.ProductID)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"order_id":   order.ID,
					"product_id": item.ProductID,
				}).Warn("Skipping line item for unknown product")
				continue
			}

			categories := patterns[user.ID]
			if categories == nil {
				categories = make(map[string]int)
				patterns[user.ID] = categories
			}
			categories[product.Category] += item.Quantity
		}
	}

	return patterns
}

// PurchasedProductIDs returns the set of product ids the user has ordered.
// Line items referencing unknown products are skipped.
func (s *PurchasePatternService) PurchasedProductIDs(userID int) map[int]struct{} {
	purchased := make(map[int]struct{})
	for _, order := range s.catalog.OrdersByUser(userID) {
		for _, item := range order.Items {
			if _, err := s.catalog.ProductByID(item.ProductID); err != nil {
				continue
			}
			purchased[item.ProductID] = struct{}{}
		}
	}
	return purchased
}

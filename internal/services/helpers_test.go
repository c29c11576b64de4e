package services

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestCatalog builds the shared fixture: five users in three cities, a
// seven-product catalog with one out-of-stock and one low-rated item, and an
// order history that gives every purchasing user a distinct category
// profile.
func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	users := []models.User{
		{ID: 1, Name: "Ana", Age: 28, City: "Madrid", Hobbies: []string{"reading", "hiking"}, Active: true, Tier: "gold", Points: 1200},
		{ID: 2, Name: "Bruno", Age: 31, City: "Madrid", Hobbies: []string{"hiking", "photography"}, Active: true, Tier: "silver", Points: 640},
		{ID: 3, Name: "Carla", Age: 27, City: "Barcelona", Hobbies: []string{"reading", "cooking"}, Active: true, Tier: "gold", Points: 980},
		{ID: 4, Name: "Diego", Age: 45, City: "Valencia", Hobbies: []string{"cycling"}, Active: false, Tier: "bronze", Points: 120},
		{ID: 5, Name: "Elena", Age: 29, City: "Madrid", Hobbies: []string{"reading", "hiking", "yoga"}, Active: true, Tier: "silver", Points: 450},
	}

	products := []models.Product{
		{ID: 101, Name: "Trail Backpack 40L", Category: "outdoor", Rating: 4.5, Stock: 5, Featured: true, Tags: []string{"hiking", "travel"}, Price: 89.9},
		{ID: 102, Name: "Historical Fiction Anthology", Category: "books", Rating: 4.7, Stock: 12, Tags: []string{"reading", "fiction"}, Price: 24.5},
		{ID: 103, Name: "Trekking Poles Pair", Category: "outdoor", Rating: 4.2, Stock: 8, Tags: []string{"hiking"}, Price: 45.0},
		{ID: 104, Name: "Compact Mirrorless Camera", Category: "electronics", Rating: 4.8, Stock: 3, Featured: true, Tags: []string{"photography"}, Price: 699.0},
		{ID: 105, Name: "Cast Iron Skillet", Category: "kitchen", Rating: 4.6, Stock: 0, Tags: []string{"cooking"}, Price: 39.9},
		{ID: 106, Name: "Non-slip Yoga Mat", Category: "sports", Rating: 3.9, Stock: 20, Tags: []string{"yoga", "fitness"}, Price: 29.9},
		{ID: 107, Name: "Mystery Novel Box Set", Category: "books", Rating: 4.4, Stock: 7, Featured: true, Tags: []string{"reading", "mystery"}, Price: 34.9},
	}

	orders := []models.Order{
		{ID: 1001, UserID: 1, Items: []models.OrderItem{{ProductID: 102, Quantity: 1}, {ProductID: 103, Quantity: 1}}},
		{ID: 1002, UserID: 2, Items: []models.OrderItem{{ProductID: 101, Quantity: 1}, {ProductID: 104, Quantity: 1}}},
		{ID: 1003, UserID: 3, Items: []models.OrderItem{{ProductID: 102, Quantity: 2}, {ProductID: 105, Quantity: 1}}},
		{ID: 1004, UserID: 5, Items: []models.OrderItem{{ProductID: 103, Quantity: 1}, {ProductID: 107, Quantity: 1}}},
		{ID: 1005, UserID: 2, Items: []models.OrderItem{{ProductID: 103, Quantity: 2}}},
	}

	cat, err := catalog.New(users, products, orders)
	require.NoError(t, err)
	return cat
}

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return newServicesFor(t, newTestCatalog(t))
}

func newServicesFor(t *testing.T, cat *catalog.Catalog) *Services {
	t.Helper()

	cfg := &config.Config{Recommendation: *config.Defaults()}
	return New(cfg, testLogger(), cat, nil)
}

// newLoneUserCatalog holds a single user with nothing to recommend.
func newLoneUserCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	users := []models.User{{ID: 1, Name: "Ana", Age: 28, City: "Madrid", Hobbies: []string{"reading"}}}
	cat, err := catalog.New(users, nil, nil)
	require.NoError(t, err)
	return cat
}

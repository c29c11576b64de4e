package catalog

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeDataDir(t *testing.T, users, products, orders string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, usersFile), []byte(users), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, productsFile), []byte(products), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ordersFile), []byte(orders), 0o644))
	return dir
}

const validUsers = `[
	{"id": 1, "name": "Ana", "age": 28, "city": "Madrid", "hobbies": ["reading"], "active": true},
	{"id": 2, "name": "Bruno", "age": 31, "city": "Madrid", "hobbies": ["hiking"], "active": true}
]`

const validProducts = `[
	{"id": 101, "name": "Backpack", "category": "outdoor", "rating": 4.5, "stock": 5, "featured": true, "tags": ["hiking"]},
	{"id": 102, "name": "Anthology", "category": "books", "rating": 4.7, "stock": 12}
]`

const validOrders = `[
	{"id": 1001, "user_id": 1, "date": "2026-07-02T10:15:00Z", "items": [{"product_id": 102, "quantity": 1}]}
]`

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(testLogger())

	t.Run("loads a valid data directory", func(t *testing.T) {
		dir := writeDataDir(t, validUsers, validProducts, validOrders)

		cat, err := loader.Load(dir)
		require.NoError(t, err)

		assert.Len(t, cat.Users(), 2)
		assert.Len(t, cat.Products(), 2)
		assert.Len(t, cat.Orders(), 1)
	})

	t.Run("rejects users that violate the schema", func(t *testing.T) {
		dir := writeDataDir(t, `[{"id": "one", "name": "Ana", "age": 28, "city": "Madrid"}]`, validProducts, validOrders)

		_, err := loader.Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users.json")
	})

	t.Run("rejects a user missing a required field", func(t *testing.T) {
		dir := writeDataDir(t, `[{"id": 1, "age": 28, "city": "Madrid"}]`, validProducts, validOrders)

		_, err := loader.Load(dir)
		require.Error(t, err)
	})

	t.Run("rejects an order item with zero quantity", func(t *testing.T) {
		orders := `[{"id": 1001, "user_id": 1, "items": [{"product_id": 102, "quantity": 0}]}]`
		dir := writeDataDir(t, validUsers, validProducts, orders)

		_, err := loader.Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orders")
	})

	t.Run("rejects a product rating above five", func(t *testing.T) {
		products := `[{"id": 101, "name": "Backpack", "category": "outdoor", "rating": 6.1}]`
		dir := writeDataDir(t, validUsers, products, validOrders)

		_, err := loader.Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "products")
	})

	t.Run("fails when a data file is missing", func(t *testing.T) {
		dir := t.TempDir()

		_, err := loader.Load(dir)
		require.Error(t, err)
	})
}

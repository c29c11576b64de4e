package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresLoaderLoad(t *testing.T) {
	t.Run("builds the snapshot from relational rows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, name, age, city, hobbies, active, tier, points").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "age", "city", "hobbies", "active", "tier", "points"}).
				AddRow(1, "Ana", 28, "Madrid", []string{"reading", "hiking"}, true, "gold", 1200).
				AddRow(2, "Bruno", 31, "Madrid", []string{"hiking"}, true, "silver", 640))

		mock.ExpectQuery("SELECT id, name, category, rating, stock, featured, tags, price").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "rating", "stock", "featured", "tags", "price"}).
				AddRow(101, "Backpack", "outdoor", 4.5, 5, true, []string{"hiking"}, 89.9).
				AddRow(102, "Anthology", "books", 4.7, 12, false, []string{"reading"}, 24.5))

		mock.ExpectQuery("SELECT id, user_id, ordered_at").
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "ordered_at"}).
				AddRow(1001, 1, time.Date(2026, 7, 2, 10, 15, 0, 0, time.UTC)))

		mock.ExpectQuery("SELECT order_id, product_id, quantity").
			WillReturnRows(pgxmock.NewRows([]string{"order_id", "product_id", "quantity"}).
				AddRow(1001, 102, 1).
				AddRow(9999, 101, 1))

		cat, err := NewPostgresLoader(mock, testLogger()).Load(context.Background())
		require.NoError(t, err)

		assert.Len(t, cat.Users(), 2)
		assert.Len(t, cat.Products(), 2)

		orders := cat.OrdersByUser(1)
		require.Len(t, orders, 1)
		// The line item for the unknown order 9999 is dropped.
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, 102, orders[0].Items[0].ProductID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query failures", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, name, age").
			WillReturnError(assert.AnError)

		_, err = NewPostgresLoader(mock, testLogger()).Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load users")
	})
}

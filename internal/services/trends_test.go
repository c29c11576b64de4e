package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularTrends(t *testing.T) {
	svc := newTestServices(t)

	t.Run("ranks products and categories by neighborhood quantity", func(t *testing.T) {
		report := svc.Trends.PopularTrends()

		require.NotEmpty(t, report.TopProducts)
		require.NotEmpty(t, report.TopCategories)

		// The trekking poles appear in three orders with a total quantity of
		// four, more than anything else.
		assert.Equal(t, "Trekking Poles Pair", report.TopProducts[0])
		assert.Equal(t, "Historical Fiction Anthology", report.TopProducts[1])

		assert.Equal(t, "outdoor", report.TopCategories[0])
		assert.Equal(t, "books", report.TopCategories[1])
	})

	t.Run("returns at most the configured limit", func(t *testing.T) {
		report := svc.Trends.PopularTrends()

		assert.LessOrEqual(t, len(report.TopProducts), 5)
		assert.LessOrEqual(t, len(report.TopCategories), 5)
	})

	t.Run("empty order history yields empty rankings", func(t *testing.T) {
		lone := newServicesFor(t, newLoneUserCatalog(t))

		report := lone.Trends.PopularTrends()
		assert.Empty(t, report.TopProducts)
		assert.Empty(t, report.TopCategories)
	})
}

func TestOrderedCounter(t *testing.T) {
	t.Run("ties keep first-encounter order", func(t *testing.T) {
		counter := newOrderedCounter()
		counter.add("b", 2)
		counter.add("a", 2)
		counter.add("c", 5)

		assert.Equal(t, []string{"c", "b", "a"}, counter.top(3))
	})

	t.Run("truncates to n", func(t *testing.T) {
		counter := newOrderedCounter()
		counter.add("a", 1)
		counter.add("b", 3)

		assert.Equal(t, []string{"b"}, counter.top(1))
	})
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	t.Run("similarity weights sum to one", func(t *testing.T) {
		w := cfg.Similarity
		assert.InDelta(t, 1.0, w.Hobby+w.Category+w.Age+w.City, 1e-12)
	})

	t.Run("carries the production scoring model", func(t *testing.T) {
		assert.Equal(t, 40.0, cfg.Scoring.NeighborPurchase)
		assert.Equal(t, 30.0, cfg.Scoring.CategoryMatch)
		assert.Equal(t, 30.0, cfg.Scoring.HobbyMatch)
		assert.Equal(t, 4.0, cfg.Scoring.MinRating)
		assert.Equal(t, 100.0, cfg.Scoring.MaxScore)
	})

	t.Run("limits default to five", func(t *testing.T) {
		assert.Equal(t, 5, cfg.NeighborLimit)
		assert.Equal(t, 5, cfg.DefaultCount)
		assert.Equal(t, 5, cfg.TrendLimit)
	})
}

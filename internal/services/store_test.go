package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercata/affinity/pkg/models"
)

func TestRecommendationStore(t *testing.T) {
	t.Run("nil client disables the store", func(t *testing.T) {
		store := NewRecommendationStore(nil, time.Minute, testLogger())

		assert.False(t, store.Enabled())

		err := store.Save(context.Background(), 1, []models.Recommendation{{Score: 40}})
		require.NoError(t, err)

		loaded, err := store.Load(context.Background(), 1)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("keys are derived from the user id", func(t *testing.T) {
		assert.Equal(t, "recommendations:user:7", recommendationKey(7))
	})
}

func TestHealthService(t *testing.T) {
	t.Run("healthy with redis disabled", func(t *testing.T) {
		svc := newTestServices(t)

		status := svc.Health.CheckHealth()
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "disabled", status.Components["redis"])
		assert.Contains(t, status.Components["catalog"], "5 users")
	})
}

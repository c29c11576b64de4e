package services

import (
	"sort"

	"github.com/mercata/affinity/pkg/models"
)

// NearestNeighbors ranks every other user by similarity to the reference
// user and returns the top limit entries, descending. Ties keep the
// catalog's iteration order, which is why the sort must be stable. The
// reference user is never part of its own result. An unknown reference id
// fails with catalog.ErrUserNotFound instead of silently returning an
// empty list.
func (s *SimilarityService) NearestNeighbors(userID, limit int) ([]models.SimilarUser, error) {
	reference, err := s.catalog.UserByID(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.config.NeighborLimit
	}

	patterns := s.patterns.AnalyzePurchasePatterns()

	var neighbors []models.SimilarUser
	for _, candidate := range s.catalog.Users() {
		if candidate.ID == reference.ID {
			continue
		}
		neighbors = append(neighbors, models.SimilarUser{
			User:       candidate,
			Similarity: s.similarity(reference, &candidate, patterns),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}

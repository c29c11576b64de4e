package services

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/pkg/models"
)

// SimilarityService computes pairwise user similarity from four weighted
// signals: shared hobbies, shared purchased categories, age distance, and
// city match. Every sub-score is clamped to [0,1] and the weights sum to 1,
// so the total is always in [0,1].
type SimilarityService struct {
	catalog  *catalog.Catalog
	patterns *PurchasePatternService
	config   *config.AlgorithmConfig
	logger   *logrus.Logger
}

func NewSimilarityService(
	cat *catalog.Catalog,
	patterns *PurchasePatternService,
	cfg *config.AlgorithmConfig,
	logger *logrus.Logger,
) *SimilarityService {
	return &SimilarityService{
		catalog:  cat,
		patterns: patterns,
		config:   cfg,
		logger:   logger,
	}
}

// UserSimilarity returns the similarity between two users in [0,1]. A user
// compared with itself is exactly 1, short-circuited before any signal is
// computed. Unknown user ids fail with catalog.ErrUserNotFound; there is no
// silent NaN path.
func (s *SimilarityService) UserSimilarity(aID, bID int) (float64, error) {
	a, err := s.catalog.UserByID(aID)
	if err != nil {
		return 0, err
	}
	b, err := s.catalog.UserByID(bID)
	if err != nil {
		return 0, err
	}

	if aID == bID {
		return 1, nil
	}

	return s.similarity(a, b, s.patterns.AnalyzePurchasePatterns()), nil
}

// similarity combines the four sub-scores for two distinct, existing users.
// Patterns are passed in so ranking a whole neighborhood analyzes the order
// history once.
func (s *SimilarityService) similarity(a, b *models.User, patterns map[int]map[string]int) float64 {
	w := s.config.Similarity

	hobby := overlapRatio(foldSet(a.Hobbies), foldSet(b.Hobbies))
	category := overlapRatio(categorySet(patterns[a.ID]), categorySet(patterns[b.ID]))
	age := ageSimilarity(a.Age, b.Age, w.MaxAgeGap)

	city := 0.0
	if a.City == b.City {
		city = 1.0
	}

	return w.Hobby*hobby + w.Category*category + w.Age*age + w.City*city
}

// overlapRatio is |A ∩ B| / max(|A|, |B|). Two empty sets are defined as 0,
// not 0/0: users with nothing to compare are treated as not similar on that
// signal rather than producing NaN.
func overlapRatio(a, b map[string]struct{}) float64 {
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	if larger == 0 {
		return 0
	}

	common := 0
	for key := range a {
		if _, ok := b[key]; ok {
			common++
		}
	}
	return float64(common) / float64(larger)
}

// ageSimilarity decays linearly with the age gap and bottoms out at
// maxGap years.
func ageSimilarity(a, b int, maxGap float64) float64 {
	gap := math.Abs(float64(a - b))
	return 1 - math.Min(gap/maxGap, 1)
}

// foldSet builds a case-folded set from a slice of tags, so hobby and tag
// comparison is case-insensitive across scripts, not just ASCII.
func foldSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[fold(tag)] = struct{}{}
	}
	return set
}

func categorySet(frequencies map[string]int) map[string]struct{} {
	set := make(map[string]struct{}, len(frequencies))
	for category := range frequencies {
		set[category] = struct{}{}
	}
	return set
}

// fold case-folds a single string. A fresh Caser per call: cases.Caser
// carries internal state and is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments the handlers update. Exposed on
// /metrics via the default registry.
type Metrics struct {
	RecommendationsGenerated prometheus.Counter
	RecommendationsReturned  prometheus.Histogram
	SimilarityQueries        prometheus.Counter
	NotFoundResponses        prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RecommendationsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "affinity_recommendations_generated_total",
			Help: "Number of recommendation requests served.",
		}),
		RecommendationsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "affinity_recommendations_returned",
			Help:    "Recommendations returned per request.",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		SimilarityQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "affinity_similarity_queries_total",
			Help: "Number of similarity and neighbor queries served.",
		}),
		NotFoundResponses: factory.NewCounter(prometheus.CounterOpts{
			Name: "affinity_not_found_responses_total",
			Help: "Requests that referenced an unknown user or product.",
		}),
	}
}

package models

// CatalogStats summarizes how much of the catalog is recommendable.
type CatalogStats struct {
	ActiveUsers           int                `json:"active_users"`
	RecommendableProducts int                `json:"recommendable_products"`
	MeanRating            float64            `json:"mean_rating"`
	AvailablePerUser      []UserAvailability `json:"available_per_user"`
}

// UserAvailability counts the recommendable products a user has not yet
// purchased.
type UserAvailability struct {
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name"`
	Available int    `json:"available"`
}

// UserEffectiveness reports, per user, the share of generated
// recommendations that meet the acceptance heuristic (in stock, rating at
// least 4).
type UserEffectiveness struct {
	UserID          int     `json:"user_id"`
	UserName        string  `json:"user_name"`
	Recommendations int     `json:"recommendations"`
	Accepted        int     `json:"accepted"`
	Acceptance      float64 `json:"acceptance"`
}

type EffectivenessReport struct {
	MeanAcceptance float64             `json:"mean_acceptance"`
	Details        []UserEffectiveness `json:"details"`
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

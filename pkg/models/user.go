package models

// User is a catalog user. The catalog treats users as immutable; services
// only read them.
type User struct {
	ID      int      `json:"id" validate:"required,gt=0"`
	Name    string   `json:"name" validate:"required"`
	Age     int      `json:"age" validate:"gte=0"`
	City    string   `json:"city"`
	Hobbies []string `json:"hobbies"`
	Active  bool     `json:"active"`
	Tier    string   `json:"tier"`
	Points  int      `json:"points" validate:"gte=0"`
}

// SimilarUser pairs a user with its similarity to a reference user.
// Similarity is always in [0,1].
type SimilarUser struct {
	User       User    `json:"user"`
	Similarity float64 `json:"similarity"`
}

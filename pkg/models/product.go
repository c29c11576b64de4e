package models

// Product is a catalog product. Immutable for the recommendation core.
type Product struct {
	ID       int      `json:"id" validate:"required,gt=0"`
	Name     string   `json:"name" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Rating   float64  `json:"rating" validate:"gte=0,lte=5"`
	Stock    int      `json:"stock" validate:"gte=0"`
	Featured bool     `json:"featured"`
	Tags     []string `json:"tags"`
	Price    float64  `json:"price" validate:"gte=0"`
}

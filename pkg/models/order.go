package models

import "time"

// OrderItem references a product by id. Referential integrity is not
// guaranteed; items whose product id is unknown are skipped during
// analysis, never treated as fatal.
type OrderItem struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"gt=0"`
}

type Order struct {
	ID     int         `json:"id" validate:"required,gt=0"`
	UserID int         `json:"user_id" validate:"required,gt=0"`
	Date   time.Time   `json:"date"`
	Items  []OrderItem `json:"items" validate:"dive"`
}

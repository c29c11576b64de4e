package catalog

import (
	"errors"
	"fmt"

	"github.com/mercata/affinity/pkg/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// Catalog is an immutable snapshot of users, products, and orders. All
// recommendation services read from it; nothing mutates it after New, so it
// is safe to share across concurrent requests without locking.
type Catalog struct {
	users    []models.User
	products []models.Product
	orders   []models.Order

	usersByID    map[int]int
	productsByID map[int]int
}

func New(users []models.User, products []models.Product, orders []models.Order) (*Catalog, error) {
	c := &Catalog{
		users:        users,
		products:     products,
		orders:       orders,
		usersByID:    make(map[int]int, len(users)),
		productsByID: make(map[int]int, len(products)),
	}

	for i, u := range users {
		if _, exists := c.usersByID[u.ID]; exists {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		c.usersByID[u.ID] = i
	}

	for i, p := range products {
		if _, exists := c.productsByID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.productsByID[p.ID] = i
	}

	return c, nil
}

// Users returns the snapshot's users in load order. Callers must not mutate
// the returned slice.
func (c *Catalog) Users() []models.User { return c.users }

func (c *Catalog) Products() []models.Product { return c.products }

func (c *Catalog) Orders() []models.Order { return c.orders }

func (c *Catalog) UserByID(id int) (*models.User, error) {
	i, ok := c.usersByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, id)
	}
	return &c.users[i], nil
}

func (c *Catalog) ProductByID(id int) (*models.Product, error) {
	i, ok := c.productsByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return &c.products[i], nil
}

// OrdersByUser returns the user's orders in catalog order. It does not
// check that the user exists; an unknown id yields an empty slice.
func (c *Catalog) OrdersByUser(userID int) []models.Order {
	var orders []models.Order
	for _, o := range c.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders
}

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/pkg/models"
)

// Querier is the subset of pgxpool.Pool the postgres loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PostgresLoader builds the catalog snapshot from a relational store. The
// snapshot is still immutable once built; this is only an alternative
// source to the JSON data files.
type PostgresLoader struct {
	db     Querier
	logger *logrus.Logger
}

func NewPostgresLoader(db Querier, logger *logrus.Logger) *PostgresLoader {
	return &PostgresLoader{db: db, logger: logger}
}

func (l *PostgresLoader) Load(ctx context.Context) (*Catalog, error) {
	users, err := l.loadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	products, err := l.loadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	orders, err := l.loadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	catalog, err := New(users, products, orders)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"users":    len(users),
		"products": len(products),
		"orders":   len(orders),
	}).Info("Catalog loaded from postgres")

	return catalog, nil
}

func (l *PostgresLoader) loadUsers(ctx context.Context) ([]models.User, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, name, age, city, hobbies, active, tier, points
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.City, &u.Hobbies, &u.Active, &u.Tier, &u.Points); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (l *PostgresLoader) loadProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, name, category, rating, stock, featured, tags, price
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Rating, &p.Stock, &p.Featured, &p.Tags, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (l *PostgresLoader) loadOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, user_id, ordered_at
		FROM orders
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	index := make(map[int]int)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Date); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := l.db.Query(ctx, `
		SELECT order_id, product_id, quantity
		FROM order_items
		ORDER BY order_id, product_id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		var item models.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		i, ok := index[orderID]
		if !ok {
			// Orphaned line item; skip it the same way the analyzers do.
			l.logger.WithField("order_id", orderID).Warn("Skipping line item for unknown order")
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, itemRows.Err()
}

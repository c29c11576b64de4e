package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"github.com/mercata/affinity/pkg/models"
)

const (
	usersFile    = "users.json"
	productsFile = "products.json"
	ordersFile   = "orders.json"
)

// Loader reads the catalog from JSON data files. Each file is validated
// against its JSON schema before decoding, and each decoded record against
// its struct tags, so a malformed file is rejected with a useful path
// instead of producing a partial snapshot.
type Loader struct {
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{
		validate: validator.New(),
		logger:   logger,
	}
}

func (l *Loader) Load(dataDir string) (*Catalog, error) {
	var users []models.User
	if err := l.loadFile(filepath.Join(dataDir, usersFile), usersSchema, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for i := range users {
		if err := l.validate.Struct(&users[i]); err != nil {
			return nil, fmt.Errorf("invalid user record %d: %w", i, err)
		}
	}

	var products []models.Product
	if err := l.loadFile(filepath.Join(dataDir, productsFile), productsSchema, &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for i := range products {
		if err := l.validate.Struct(&products[i]); err != nil {
			return nil, fmt.Errorf("invalid product record %d: %w", i, err)
		}
	}

	var orders []models.Order
	if err := l.loadFile(filepath.Join(dataDir, ordersFile), ordersSchema, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		if err := l.validate.Struct(&orders[i]); err != nil {
			return nil, fmt.Errorf("invalid order record %d: %w", i, err)
		}
	}

	catalog, err := New(users, products, orders)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"users":    len(users),
		"products": len(products),
		"orders":   len(orders),
		"data_dir": dataDir,
	}).Info("Catalog loaded")

	return catalog, nil
}

func (l *Loader) loadFile(path, schema string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", filepath.Base(path), err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("invalid %s: %s", filepath.Base(path), strings.Join(problems, "; "))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	return nil
}

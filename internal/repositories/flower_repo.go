package repositories

import (
	"context"
	"errors"

	"bloombuilder/internal/models"
)

// ErrNotFound is returned when no flower exists at the requested ID.
var ErrNotFound = errors.New("flower not found")

// FlowerRepository defines the interface for flower data access.
type FlowerRepository interface {
	// Find returns every flower in insertion order.
	Find(ctx context.Context) ([]models.Flower, error)
	// Insert stores a new flower, assigning its ID.
	Insert(ctx context.Context, flower *models.Flower) error
	FindByID(ctx context.Context, id string) (*models.Flower, error)
	// UpdateByID replaces every mutable field of the flower at id.
	UpdateByID(ctx context.Context, id string, flower models.Flower) (*models.Flower, error)
	// DeleteByID reports whether a flower was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

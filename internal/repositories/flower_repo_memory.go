package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"bloombuilder/internal/models"

	"github.com/google/uuid"
)

// MemoryFlowerRepository is an in-memory implementation of FlowerRepository.
// It keeps insertion order so Find behaves like the database implementation.
type MemoryFlowerRepository struct {
	flowers map[string]models.Flower
	order   []string
	mu      sync.RWMutex
}

// NewMemoryFlowerRepository creates a new instance of MemoryFlowerRepository.
func NewMemoryFlowerRepository() *MemoryFlowerRepository {
	return &MemoryFlowerRepository{
		flowers: make(map[string]models.Flower),
	}
}

// Find returns all flowers.
func (r *MemoryFlowerRepository) Find(_ context.Context) ([]models.Flower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flowerList := make([]models.Flower, 0, len(r.order))
	for _, id := range r.order {
		flowerList = append(flowerList, r.flowers[id])
	}
	return flowerList, nil
}

// Insert adds a new flower.
func (r *MemoryFlowerRepository) Insert(_ context.Context, flower *models.Flower) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if flower.ID == "" {
		flower.ID = uuid.New().String()
	}
	now := time.Now()
	flower.CreatedAt = now
	flower.UpdatedAt = now
	if _, exists := r.flowers[flower.ID]; !exists {
		r.order = append(r.order, flower.ID)
	}
	r.flowers[flower.ID] = *flower
	return nil
}

// FindByID returns a flower by its ID.
func (r *MemoryFlowerRepository) FindByID(_ context.Context, id string) (*models.Flower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flower, ok := r.flowers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &flower, nil
}

// UpdateByID replaces the mutable fields of an existing flower.
func (r *MemoryFlowerRepository) UpdateByID(_ context.Context, id string, flower models.Flower) (*models.Flower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.flowers[id]
	if !ok {
		return nil, ErrNotFound
	}
	flower.ID = id
	flower.CreatedAt = existing.CreatedAt
	flower.UpdatedAt = time.Now()
	r.flowers[id] = flower
	return &flower, nil
}

// DeleteByID removes a flower by its ID.
func (r *MemoryFlowerRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flowers[id]; !ok {
		return false, nil
	}
	delete(r.flowers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = slices.Delete(r.order, i, i+1)
			break
		}
	}
	return true, nil
}

// Ping always succeeds.
func (r *MemoryFlowerRepository) Ping(_ context.Context) error {
	return nil
}

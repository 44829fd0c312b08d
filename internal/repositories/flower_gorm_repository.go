package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bloombuilder/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// mutableColumns lists the columns an update may write. Selecting them
// explicitly makes GORM persist zero values such as quantity 0.
var mutableColumns = []string{"name", "type", "color", "price", "quantity", "image_url", "updated_at"}

// GORMFlowerRepository is a GORM implementation of FlowerRepository.
type GORMFlowerRepository struct {
	db *gorm.DB
}

// NewGORMFlowerRepository creates a new instance of GORMFlowerRepository.
func NewGORMFlowerRepository(db *gorm.DB) *GORMFlowerRepository {
	return &GORMFlowerRepository{
		db: db,
	}
}

// Find retrieves all flowers from the database.
func (r *GORMFlowerRepository) Find(ctx context.Context) ([]models.Flower, error) {
	flowers := make([]models.Flower, 0)
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&flowers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all flowers: %w", err)
	}
	return flowers, nil
}

// Insert creates a new flower in the database.
func (r *GORMFlowerRepository) Insert(ctx context.Context, flower *models.Flower) error {
	if flower.ID == "" {
		flower.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(flower).Error; err != nil {
		return fmt.Errorf("failed to create flower: %w", err)
	}
	return nil
}

// FindByID retrieves a single flower by its ID from the database.
func (r *GORMFlowerRepository) FindByID(ctx context.Context, id string) (*models.Flower, error) {
	var flower models.Flower
	if err := r.db.WithContext(ctx).First(&flower, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flower by ID %s: %w", id, err)
	}
	return &flower, nil
}

// UpdateByID writes the mutable fields of flower to the row at id.
func (r *GORMFlowerRepository) UpdateByID(ctx context.Context, id string, flower models.Flower) (*models.Flower, error) {
	flower.ID = id
	flower.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Flower{}).
		Where("id = ?", id).
		Select(mutableColumns).
		Updates(&flower)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update flower %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// DeleteByID deletes a flower by its ID from the database.
func (r *GORMFlowerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Flower{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete flower %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Ping checks the underlying connection.
func (r *GORMFlowerRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"bloombuilder/internal/apperrors"
	"bloombuilder/internal/models"
	"bloombuilder/internal/repositories"
	"bloombuilder/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EventPublisher receives inventory change events.
type EventPublisher interface {
	PublishFlowerEvent(ctx context.Context, event models.FlowerEvent) error
}

// FlowerService handles business logic related to flowers.
type FlowerService struct {
	repo      repositories.FlowerRepository
	validate  *validator.Validate
	publisher EventPublisher
	log       *logger.Logger
}

// NewFlowerService creates a new FlowerService. publisher may be nil.
func NewFlowerService(repo repositories.FlowerRepository, publisher EventPublisher, log *logger.Logger) *FlowerService {
	if log == nil {
		log = logger.Nop()
	}
	return &FlowerService{
		repo:      repo,
		validate:  newValidator(),
		publisher: publisher,
		log:       log,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ListFlowers retrieves all flowers.
func (s *FlowerService) ListFlowers(ctx context.Context) ([]models.Flower, error) {
	flowers, err := s.repo.Find(ctx)
	if err != nil {
		return nil, apperrors.Store(err, "failed to list flowers")
	}
	return flowers, nil
}

// GetFlower retrieves a single flower by its ID.
func (s *FlowerService) GetFlower(ctx context.Context, id string) (*models.Flower, error) {
	if !isValidID(id) {
		return nil, apperrors.NotFound(id)
	}
	flower, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "failed to get flower")
	}
	return flower, nil
}

// CreateFlower validates the input and stores a new flower.
func (s *FlowerService) CreateFlower(ctx context.Context, input models.FlowerInput) (*models.Flower, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}
	flower := input.ToFlower()
	if err := s.check(flower); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, &flower); err != nil {
		return nil, apperrors.Store(err, "failed to create flower")
	}

	s.publish(ctx, models.FlowerCreated, flower.ID, &flower)
	return &flower, nil
}

// UpdateFlower merges patch onto the stored flower and re-validates the
// whole record before writing it. An invalid result leaves the store untouched.
func (s *FlowerService) UpdateFlower(ctx context.Context, id string, patch models.FlowerPatch) (*models.Flower, error) {
	if !isValidID(id) {
		return nil, apperrors.NotFound(id)
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "failed to load flower for update")
	}

	merged := patch.Apply(*existing)
	if err := s.check(merged); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, id, merged)
	if err != nil {
		return nil, s.mapRepoError(err, id, "failed to update flower")
	}

	s.publish(ctx, models.FlowerUpdated, id, updated)
	return updated, nil
}

// DeleteFlower deletes a flower by its ID.
func (s *FlowerService) DeleteFlower(ctx context.Context, id string) error {
	if !isValidID(id) {
		return apperrors.NotFound(id)
	}
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperrors.Store(err, "failed to delete flower")
	}
	if !deleted {
		return apperrors.NotFound(id)
	}

	s.publish(ctx, models.FlowerDeleted, id, nil)
	return nil
}

// Ping reports whether the store is reachable.
func (s *FlowerService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// isValidID rejects identifiers the store could never have issued, so they
// resolve to not-found instead of reaching the store.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *FlowerService) mapRepoError(err error, id, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(id)
	}
	return apperrors.Store(err, message)
}

func (s *FlowerService) check(value any) error {
	err := s.validate.Struct(value)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Validation(err.Error())
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, describeFieldError(e))
	}
	return apperrors.Validation(strings.Join(messages, "; "))
}

func describeFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", e.Field(), e.Tag())
	}
}

func (s *FlowerService) publish(ctx context.Context, eventType models.FlowerEventType, id string, flower *models.Flower) {
	if s.publisher == nil {
		return
	}
	event := models.FlowerEvent{
		Type:       eventType,
		FlowerID:   id,
		Flower:     flower,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishFlowerEvent(ctx, event); err != nil {
		s.log.Warn(ctx, fmt.Sprintf("failed to publish %s event for flower %s", eventType, id), err)
	}
}

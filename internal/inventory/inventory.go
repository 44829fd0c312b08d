// Package inventory keeps a client-side copy of the flower list in step with
// the API. Local items only change after the server has confirmed a write.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"bloombuilder/internal/models"
	"bloombuilder/pkg/logger"
)

// FlowerAPI is the remote resource the inventory talks to.
type FlowerAPI interface {
	List(ctx context.Context) ([]models.Flower, error)
	Create(ctx context.Context, input models.FlowerInput) (*models.Flower, error)
	Update(ctx context.Context, id string, patch models.FlowerPatch) (*models.Flower, error)
	Delete(ctx context.Context, id string) error
}

// Inventory issues requests to the API and folds the responses into its state.
// Requests are not serialized: concurrent actions race and the last response
// to arrive wins.
type Inventory struct {
	api   FlowerAPI
	log   *logger.Logger
	mu    sync.Mutex
	state State
}

// New creates an empty Inventory.
func New(api FlowerAPI, log *logger.Logger) *Inventory {
	if log == nil {
		log = logger.Nop()
	}
	return &Inventory{
		api:   api,
		log:   log,
		state: State{Items: []models.Flower{}},
	}
}

// State returns a snapshot of the current state.
func (i *Inventory) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.Clone()
}

func (i *Inventory) dispatch(a Action) State {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = Reduce(i.state, a)
	return i.state.Clone()
}

// Load replaces the items with the server's list.
func (i *Inventory) Load(ctx context.Context) error {
	flowers, err := i.api.List(ctx)
	if err != nil {
		i.log.Error(ctx, "failed to fetch flowers", err)
		return fmt.Errorf("load flowers: %w", err)
	}
	i.dispatch(Loaded{Items: flowers})
	return nil
}

// SetDraft replaces the new-flower draft.
func (i *Inventory) SetDraft(d Draft) {
	i.dispatch(DraftChanged{Draft: d})
}

// Submit creates a flower from d. On success the created record is appended
// and the draft is reset; on failure the draft is kept for correction.
func (i *Inventory) Submit(ctx context.Context, d Draft) (*models.Flower, error) {
	i.dispatch(DraftChanged{Draft: d})

	created, err := i.api.Create(ctx, d.Input())
	if err != nil {
		i.log.Error(ctx, "failed to add flower", err)
		return nil, fmt.Errorf("add flower: %w", err)
	}
	i.dispatch(Submitted{Flower: *created})
	return created, nil
}

// BeginEdit starts editing item in place.
func (i *Inventory) BeginEdit(item models.Flower) {
	i.dispatch(EditBegun{Flower: item})
}

// SetEditDraft replaces the draft of the current edit, if any.
func (i *Inventory) SetEditDraft(d Draft) {
	i.dispatch(EditDraftChanged{Draft: d})
}

// CancelEdit discards the current edit.
func (i *Inventory) CancelEdit() {
	i.dispatch(EditCancelled{})
}

// CommitEdit sends d as the new values of the flower at id. On success the
// item is replaced in place and the edit is cleared; on failure the edit
// is kept.
func (i *Inventory) CommitEdit(ctx context.Context, id string, d Draft) (*models.Flower, error) {
	i.mu.Lock()
	if i.state.Edit != nil && i.state.Edit.ID == id {
		i.state = Reduce(i.state, EditDraftChanged{Draft: d})
	}
	i.mu.Unlock()

	updated, err := i.api.Update(ctx, id, d.Patch())
	if err != nil {
		i.log.Error(ctx, "failed to update flower "+id, err)
		return nil, fmt.Errorf("update flower %s: %w", id, err)
	}
	i.dispatch(EditCommitted{Flower: *updated})
	return updated, nil
}

// Remove deletes the flower at id and drops it locally once confirmed.
func (i *Inventory) Remove(ctx context.Context, id string) error {
	if err := i.api.Delete(ctx, id); err != nil {
		i.log.Error(ctx, "failed to delete flower "+id, err)
		return fmt.Errorf("delete flower %s: %w", id, err)
	}
	i.dispatch(Removed{ID: id})
	return nil
}

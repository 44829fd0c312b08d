package inventory

import (
	"slices"

	"bloombuilder/internal/models"
)

// Draft holds form values for a flower that has not been saved yet.
type Draft struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl"`
}

// DraftFrom copies the editable fields of f.
func DraftFrom(f models.Flower) Draft {
	return Draft{
		Name:     f.Name,
		Type:     f.Type,
		Color:    f.Color,
		Price:    f.Price,
		Quantity: f.Quantity,
		ImageURL: f.ImageURL,
	}
}

// Input converts the draft into a create request.
func (d Draft) Input() models.FlowerInput {
	price, quantity := d.Price, d.Quantity
	return models.FlowerInput{
		Name:     d.Name,
		Type:     d.Type,
		Color:    d.Color,
		Price:    &price,
		Quantity: &quantity,
		ImageURL: d.ImageURL,
	}
}

// Patch converts the draft into an update that sets every field.
func (d Draft) Patch() models.FlowerPatch {
	return models.PatchFrom(models.Flower{
		Name:     d.Name,
		Type:     d.Type,
		Color:    d.Color,
		Price:    d.Price,
		Quantity: d.Quantity,
		ImageURL: d.ImageURL,
	})
}

// EditState is an in-place edit of the flower with the given ID.
type EditState struct {
	ID    string
	Draft Draft
}

// State is the client's view of the inventory.
type State struct {
	Items []models.Flower
	Draft Draft
	// Edit is nil when no flower is being edited.
	Edit *EditState
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := State{Items: slices.Clone(s.Items), Draft: s.Draft}
	if out.Items == nil {
		out.Items = []models.Flower{}
	}
	if s.Edit != nil {
		edit := *s.Edit
		out.Edit = &edit
	}
	return out
}

// Action is an event that moves the state forward.
type Action interface {
	isAction()
}

// Loaded replaces the items with the server's list.
type Loaded struct{ Items []models.Flower }

// DraftChanged replaces the new-flower draft.
type DraftChanged struct{ Draft Draft }

// Submitted appends a flower the server created and resets the draft.
type Submitted struct{ Flower models.Flower }

// EditBegun starts editing Flower in place.
type EditBegun struct{ Flower models.Flower }

// EditDraftChanged replaces the draft of the current edit.
type EditDraftChanged struct{ Draft Draft }

// EditCommitted replaces the matching item with the server's updated record.
type EditCommitted struct{ Flower models.Flower }

// EditCancelled discards the current edit.
type EditCancelled struct{}

// Removed drops the item with ID after the server confirmed the delete.
type Removed struct{ ID string }

func (Loaded) isAction()           {}
func (DraftChanged) isAction()     {}
func (Submitted) isAction()        {}
func (EditBegun) isAction()        {}
func (EditDraftChanged) isAction() {}
func (EditCommitted) isAction()    {}
func (EditCancelled) isAction()    {}
func (Removed) isAction()          {}

// Reduce returns the state that results from applying a to s. It never
// modifies s.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch a := a.(type) {
	case Loaded:
		next.Items = slices.Clone(a.Items)
		if next.Items == nil {
			next.Items = []models.Flower{}
		}
	case DraftChanged:
		next.Draft = a.Draft
	case Submitted:
		next.Items = append(next.Items, a.Flower)
		next.Draft = Draft{}
	case EditBegun:
		next.Edit = &EditState{ID: a.Flower.ID, Draft: DraftFrom(a.Flower)}
	case EditDraftChanged:
		if next.Edit != nil {
			next.Edit.Draft = a.Draft
		}
	case EditCommitted:
		for i := range next.Items {
			if next.Items[i].ID == a.Flower.ID {
				next.Items[i] = a.Flower
				break
			}
		}
		if next.Edit != nil && next.Edit.ID == a.Flower.ID {
			next.Edit = nil
		}
	case EditCancelled:
		next.Edit = nil
	case Removed:
		next.Items = slices.DeleteFunc(next.Items, func(f models.Flower) bool {
			return f.ID == a.ID
		})
		if next.Edit != nil && next.Edit.ID == a.ID {
			next.Edit = nil
		}
	}

	return next
}

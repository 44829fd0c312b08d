package inventory

import (
	"testing"

	"bloombuilder/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleItems() []models.Flower {
	return []models.Flower{
		{ID: "a", Name: "Lily", Price: 1.5, Quantity: 50},
		{ID: "b", Name: "Fern", Price: 0.8, Quantity: 70},
	}
}

func TestReduceLoadedReplacesItems(t *testing.T) {
	start := State{Items: []models.Flower{{ID: "old", Name: "Old"}}}
	next := Reduce(start, Loaded{Items: sampleItems()})

	assert.Equal(t, sampleItems(), next.Items)
	assert.Equal(t, "old", start.Items[0].ID, "input state must not change")

	empty := Reduce(start, Loaded{})
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

func TestReduceSubmittedAppendsAndResetsDraft(t *testing.T) {
	start := State{Items: sampleItems(), Draft: Draft{Name: "Rose", Price: 2.5, Quantity: 100}}
	created := models.Flower{ID: "c", Name: "Rose", Price: 2.5, Quantity: 100}

	next := Reduce(start, Submitted{Flower: created})
	assert.Len(t, next.Items, 3)
	assert.Equal(t, created, next.Items[2])
	assert.Equal(t, Draft{}, next.Draft)
	assert.Len(t, start.Items, 2)
	assert.Equal(t, "Rose", start.Draft.Name)
}

func TestReduceEditLifecycle(t *testing.T) {
	items := sampleItems()
	s := Reduce(State{Items: items}, EditBegun{Flower: items[0]})
	assert.Equal(t, &EditState{ID: "a", Draft: DraftFrom(items[0])}, s.Edit)

	changed := DraftFrom(items[0])
	changed.Price = 1.75
	s = Reduce(s, EditDraftChanged{Draft: changed})
	assert.Equal(t, 1.75, s.Edit.Draft.Price)
	assert.Equal(t, 1.5, s.Items[0].Price, "items change only on commit")

	updated := items[0]
	updated.Price = 1.75
	committed := Reduce(s, EditCommitted{Flower: updated})
	assert.Nil(t, committed.Edit)
	assert.Equal(t, 1.75, committed.Items[0].Price)
	assert.Equal(t, "b", committed.Items[1].ID)
	assert.NotNil(t, s.Edit, "input state must not change")

	cancelled := Reduce(s, EditCancelled{})
	assert.Nil(t, cancelled.Edit)
}

func TestReduceEditCommittedForOtherItemKeepsEdit(t *testing.T) {
	items := sampleItems()
	s := Reduce(State{Items: items}, EditBegun{Flower: items[1]})
	updated := items[0]
	updated.Name = "Tiger Lily"

	next := Reduce(s, EditCommitted{Flower: updated})
	assert.Equal(t, "Tiger Lily", next.Items[0].Name)
	assert.NotNil(t, next.Edit)
	assert.Equal(t, "b", next.Edit.ID)
}

func TestReduceRemoved(t *testing.T) {
	items := sampleItems()
	s := Reduce(State{Items: items}, EditBegun{Flower: items[0]})

	next := Reduce(s, Removed{ID: "a"})
	assert.Len(t, next.Items, 1)
	assert.Equal(t, "b", next.Items[0].ID)
	assert.Nil(t, next.Edit)
	assert.Len(t, s.Items, 2)

	unchanged := Reduce(next, Removed{ID: "missing"})
	assert.Equal(t, next.Items, unchanged.Items)
}

func TestDraftConversions(t *testing.T) {
	d := Draft{Name: "Rose", Color: "red", Price: 0, Quantity: 0}

	input := d.Input()
	if assert.NotNil(t, input.Price) && assert.NotNil(t, input.Quantity) {
		assert.Equal(t, 0.0, *input.Price)
		assert.Equal(t, 0, *input.Quantity)
	}

	patch := d.Patch()
	merged := patch.Apply(models.Flower{ID: "x", Name: "Old", Type: "focal", Price: 3, Quantity: 9})
	assert.Equal(t, models.Flower{ID: "x", Name: "Rose", Color: "red"}, merged)
}

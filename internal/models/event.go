package models

import "time"

// FlowerEventType names an inventory change.
type FlowerEventType string

const (
	FlowerCreated FlowerEventType = "flower.created"
	FlowerUpdated FlowerEventType = "flower.updated"
	FlowerDeleted FlowerEventType = "flower.deleted"
)

// FlowerEvent is published after a successful write.
type FlowerEvent struct {
	Type       FlowerEventType `json:"type"`
	FlowerID   string          `json:"flowerId"`
	Flower     *Flower         `json:"flower,omitempty"` // nil for deletions
	OccurredAt time.Time       `json:"occurredAt"`
}

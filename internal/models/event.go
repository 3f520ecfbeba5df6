package models

import "time"

// Toy event types published after a successful mutation.
const (
	ToyCreated = "toy.created"
	ToyUpdated = "toy.updated"
	ToyDeleted = "toy.deleted"
)

// ToyEvent describes a change made to the catalog.
type ToyEvent struct {
	Type        string    `json:"type"`
	ToyID       string    `json:"toy_id"`
	SellerEmail string    `json:"seller_email,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

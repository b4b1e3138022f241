// Package events publishes ledger events to downstream consumers
// (notification delivery, registry sync). Publishing happens after the ledger
// write has committed and is strictly fire-and-forget: a failed publish is
// logged, never rolled into the request outcome.
package events

import (
	"context"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// EventType defines the kind of ledger event being published.
type EventType string

const (
	// EventPurchaseCompleted fires after a purchase has committed.
	EventPurchaseCompleted EventType = "purchaseCompleted"
	// EventCreditsRetired fires after a retirement certificate has been minted.
	EventCreditsRetired EventType = "creditsRetired"
	// EventProjectStatusChanged fires after a certification transition.
	EventProjectStatusChanged EventType = "projectStatusChanged"
)

// Event represents a generic ledger event envelope.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// PurchasePayload is the payload for a purchaseCompleted event.
type PurchasePayload struct {
	TransactionID string         `json:"transaction_id"`
	BuyerID       string         `json:"buyer_id"`
	ProjectID     string         `json:"project_id"`
	Quantity      models.Decimal `json:"quantity"`
	TotalAmount   models.Decimal `json:"total_amount"`
}

// RetirementPayload is the payload for a creditsRetired event.
type RetirementPayload struct {
	SerialNumber   string         `json:"serial_number"`
	UserID         string         `json:"user_id"`
	ProjectID      string         `json:"project_id,omitempty"`
	CreditsRetired models.Decimal `json:"credits_retired"`
}

// StatusPayload is the payload for a projectStatusChanged event.
type StatusPayload struct {
	ProjectID string               `json:"project_id"`
	From      models.ProjectStatus `json:"from"`
	To        models.ProjectStatus `json:"to"`
	Reason    string               `json:"reason,omitempty"`
}

// Publisher defines the interface for publishing ledger events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityEvent is published when a customer record changes or an
// interaction is logged. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ActivityEvent struct {
	Action          string `json:"action"` // customer.created | customer.deleted | interaction.logged
	CustomerID      uint64 `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	InteractionID   uint64 `json:"interaction_id,omitempty"`
	InteractionType string `json:"interaction_type,omitempty"`
	ActorID         uint64 `json:"actor_id"`
	OccurredAt      string `json:"occurred_at"`
}

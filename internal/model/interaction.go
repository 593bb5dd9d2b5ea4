package model

import "time"

// InteractionTypes lists the choices offered by the interaction forms.
// The list is advisory: the column stays a free VARCHAR and the server
// accepts any non-empty value, matching the permissive original behavior.
var InteractionTypes = []string{"Call", "Meeting", "Feedback", "Message", "Email", "Survey", "Visit"}

// Interaction represents a row in the `interactions` table. Every
// interaction belongs to exactly one customer via CustomerID.
//
// Fields:
//
//	ID         – primary key identifier of the interaction.
//	CustomerID – owning customer (foreign key, non-nullable).
//	Type       – kind of contact (Call, Meeting, ...); advisory set only.
//	Notes      – optional free text.
//	CreatedAt  – timestamp of creation.
type Interaction struct {
	ID         uint64    // interactions.id
	CustomerID uint64    // interactions.customer_id
	Type       string    // interactions.type
	Notes      string    // interactions.notes (empty when NULL)
	CreatedAt  time.Time // interactions.created_at
}

package model

import "time"

// Customer represents a row in the `customers` table. A customer owns zero
// or more interactions; deleting a customer removes those interactions first
// inside the same transaction.
//
// Fields:
//
//	ID        – primary key identifier of the customer.
//	Name      – contact name (required).
//	Email     – contact email; not required to be unique.
//	Phone     – optional phone number.
//	CreatedAt – timestamp of creation.
type Customer struct {
	ID        uint64    // customers.id
	Name      string    // customers.name
	Email     string    // customers.email
	Phone     string    // customers.phone (empty when NULL)
	CreatedAt time.Time // customers.created_at
}

package model

import "time"

// User represents an application user record as stored in the `users`
// table. Users are created once at registration and only ever read back
// to authenticate; no exposed operation updates or deletes them.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password; the plaintext is never stored.
//	CreatedAt    – timestamp of registration.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

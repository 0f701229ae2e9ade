package domain

import "time"

// User is the identity record. Email is the login identity, unique and
// case-normalized at creation. PasswordHash is an argon2id PHC blob and is
// never empty for a persisted user. The core never mutates a user after
// sign-up.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

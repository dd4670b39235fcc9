package models

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	Name         *string
	CreatedAt    time.Time
}

// SessionToken maps an opaque random token to a user. Tokens carry no
// expiry; they live until logout deletes them or the user is deleted.
type SessionToken struct {
	ID         int64
	Token      string
	UserID     int64
	CreatedAt  time.Time
	LastUsedAt time.Time
}

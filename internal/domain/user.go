package domain

import "time"

// User represents a registered account. Usernames are email-shaped and
// immutable once created; the password is stored only as a salted hash.
type User struct {
	ID           int64
	Username     string
	RealName     string
	PasswordHash string
	CreatedAt    time.Time
}

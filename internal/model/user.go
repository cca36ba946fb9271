package model

import "time"

// User is an authenticated account holder as seen by the game core
type User struct {
	Login     string
	CreatedAt time.Time
}

// UserAccount extends User with credential data.
// Stored separately so password hashes never travel with session state.
type UserAccount struct {
	Login        string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

package storage

import (
	"context"

	"github.com/MiracleBell/java-go-game/internal/model"
)

// UserStore defines the interface for user-account persistence.
// Session state is deliberately not stored here; sessions live only in
// the in-memory registry for the lifetime of the process.
type UserStore interface {
	// SaveAccount upserts an account keyed by login
	SaveAccount(ctx context.Context, account *model.UserAccount) error

	// GetAccount fetches an account by login, failing with
	// model.ErrUserNotFound when absent
	GetAccount(ctx context.Context, login string) (*model.UserAccount, error)

	// DeleteAccount removes an account by login
	DeleteAccount(ctx context.Context, login string) error
}

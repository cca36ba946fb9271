package memory

import (
	"context"
	"sync"

	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/storage"
)

// Storage is an in-memory implementation of the user store
type Storage struct {
	mu       sync.RWMutex
	accounts map[string]*model.UserAccount
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[string]*model.UserAccount),
	}
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

func (s *Storage) SaveAccount(ctx context.Context, account *model.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Login] = account
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, login string) (*model.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[login]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, login)
	return nil
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MiracleBell/java-go-game/internal/dependencies/clock"
	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/storage"
)

// Token is an authenticated connection credential
type Token struct {
	Value     string
	Login     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles account registration and token management
type Service struct {
	store storage.UserStore
	clock clock.Clock

	mu     sync.RWMutex
	tokens map[string]*Token

	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(store storage.UserStore, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		store:         store,
		clock:         clock,
		tokens:        make(map[string]*Token),
		tokenDuration: cfg.TokenDuration,
	}
}

// Register creates a new account and logs it in
func (s *Service) Register(ctx context.Context, login, password string) (*Token, error) {
	_, err := s.store.GetAccount(ctx, login)
	if err == nil {
		return nil, model.ErrLoginExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.UserAccount{
		Login:        login,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.issueToken(login), nil
}

// Login authenticates an existing account and issues a token
func (s *Service) Login(ctx context.Context, login, password string) (*Token, error) {
	account, err := s.store.GetAccount(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueToken(login), nil
}

// Logout invalidates a token
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// ValidateToken checks a token and returns it if still live
func (s *Service) ValidateToken(token string) (*Token, error) {
	s.mu.RLock()
	t, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidToken
	}

	if s.clock.Now().After(t.ExpiresAt) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return nil, model.ErrInvalidToken
	}

	return t, nil
}

// FindUserByToken returns the user a token belongs to
func (s *Service) FindUserByToken(token string) (*model.User, error) {
	t, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &model.User{Login: t.Login, CreatedAt: t.CreatedAt}, nil
}

// CleanExpiredTokens removes expired tokens (call periodically)
func (s *Service) CleanExpiredTokens() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, t := range s.tokens {
		if now.After(t.ExpiresAt) {
			delete(s.tokens, value)
		}
	}
}

func (s *Service) issueToken(login string) *Token {
	now := s.clock.Now()
	t := &Token{
		Value:     generateToken(),
		Login:     login,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenDuration),
	}

	s.mu.Lock()
	s.tokens[t.Value] = t
	s.mu.Unlock()

	return t
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "tok_" + base64.RawURLEncoding.EncodeToString(b)
}

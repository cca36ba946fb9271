package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/MiracleBell/java-go-game/internal/dependencies/mocks"
	"github.com/MiracleBell/java-go-game/internal/model"
	"github.com/MiracleBell/java-go-game/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.store, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	token, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(token.Value)
	s.Equal("alice", token.Login)
}

func (s *ServiceSuite) TestRegisterPersistsAccount() {
	_, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	account, err := s.store.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", account.Login)
	s.NotEqual("password123", account.PasswordHash)
}

func (s *ServiceSuite) TestRegisterDuplicateLoginFails() {
	_, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other")
	s.Require().ErrorIs(err, model.ErrLoginExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.Equal("alice", token.Login)
}

func (s *ServiceSuite) TestLoginWrongPasswordFails() {
	_, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.Require().ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUserFails() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.Require().ErrorIs(err, model.ErrInvalidCredentials)
}

// Token tests

func (s *ServiceSuite) TestFindUserByToken() {
	token, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	user, err := s.service.FindUserByToken(token.Value)
	s.Require().NoError(err)
	s.Equal("alice", user.Login)
}

func (s *ServiceSuite) TestFindUserByUnknownTokenFails() {
	_, err := s.service.FindUserByToken("tok_nope")
	s.Require().ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestExpiredTokenIsRejected() {
	token, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.FindUserByToken(token.Value)
	s.Require().ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestLogoutInvalidatesToken() {
	token, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.service.Logout(token.Value)

	_, err = s.service.FindUserByToken(token.Value)
	s.Require().ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestCleanExpiredTokens() {
	t1, err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	t2, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.service.CleanExpiredTokens()

	_, err = s.service.ValidateToken(t1.Value)
	s.Require().ErrorIs(err, model.ErrInvalidToken)
	_, err = s.service.ValidateToken(t2.Value)
	s.Require().NoError(err)
}

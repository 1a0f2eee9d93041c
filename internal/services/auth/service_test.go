package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jkothapalli/netpong/internal/dependencies/mocks"
	"github.com/jkothapalli/netpong/internal/storage/memory"
	"github.com/jkothapalli/netpong/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, mocks.NewPlainHasher(), s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.NotEqual("password123", user.PasswordHash) // Should be hashed
	s.Equal(s.clock.CurrentTime, user.CreatedAt)
}

func (s *ServiceSuite) TestRegisterTrimsUsername() {
	err := s.service.Register(s.ctx, "  alice  ", "password123")
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "alice")
	s.NoError(err)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameTaken() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "password123"))

	err := s.service.Register(s.ctx, "alice", "different")
	s.ErrorIs(err, ErrUsernameTaken)
}

func (s *ServiceSuite) TestRegisterRejectsEmptyUsername() {
	err := s.service.Register(s.ctx, "   ", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestRegisterRejectsEmptyPassword() {
	err := s.service.Register(s.ctx, "alice", "")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestConcurrentRegisterSameUsername() {
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.service.Register(s.ctx, "alice", "password123")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			s.ErrorIs(err, ErrUsernameTaken)
		}
	}
	s.Equal(1, successes)
}

// Verify tests

func (s *ServiceSuite) TestVerifySucceeds() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "password123"))

	err := s.service.Verify(s.ctx, "alice", "password123")
	s.NoError(err)
}

func (s *ServiceSuite) TestVerifyFailsWithWrongPassword() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "password123"))

	err := s.service.Verify(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrBadPassword)
}

func (s *ServiceSuite) TestVerifyFailsWithUnknownUser() {
	err := s.service.Verify(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrUnknownUser)
}

func (s *ServiceSuite) TestVerifyRejectsEmptyInput() {
	err := s.service.Verify(s.ctx, "", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

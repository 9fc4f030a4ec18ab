package resetpassword

import (
	"context"
	c "enemauth/internal/core/domain/common"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	uow "enemauth/internal/core/domain/unit_of_work"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/core/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = "test@test.test"
	OLD_PASSWORD = "old-password"
	TOKEN        = "test-password-reset-token"
)

var T0 = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Now             time.Time
	Logger          *logging.FakeLogger
	UserRepository  *user.FakeUserRepository
	TokenRepository *passwordreset.FakeTokenRepository
	Uow             *uow.FakeUnitOfWork
	Hasher          *user.FakePasswordHasher
	Service         services.Service[Input, Result]
	User            user.User
}

func (suite *testSuite) SetupTest() {
	suite.Now = T0
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.TokenRepository = passwordreset.NewFakeTokenRepository()
	suite.Uow = uow.NewFakeUnitOfWork(suite.UserRepository, suite.TokenRepository)
	suite.Hasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.Uow,
		suite.Hasher,
		func() time.Time { return suite.Now },
	)
	suite.User = suite.UserRepository.Add(user.User{
		Email:        c.NewEmail(EMAIL),
		PasswordHash: suite.hash(OLD_PASSWORD),
		CreatedAt:    T0.Add(-time.Hour),
	})
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestPasswordReset() {
	s.createToken(TOKEN, T0.Add(45*time.Minute))

	result, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass1"))

	s.Nil(err)
	s.Equal(Result{Message: passwordreset.MsgPasswordReset, Success: true}, result)
	s.assertPassword("newpass1")

	token, ok := s.TokenRepository.Get(TOKEN)
	s.True(ok)
	s.True(token.Used)
	s.True(s.Uow.Context.WasCommitCalled)
}

func (s *testSuite) TestTokenIsSingleUse() {
	s.createToken(TOKEN, T0.Add(45*time.Minute))

	first, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass1"))
	s.Nil(err)
	s.True(first.Success)

	second, err := s.Service.Run(context.Background(), input(TOKEN, "newpass2", "newpass2"))
	s.Nil(err)
	s.Equal(Result{Message: passwordreset.MsgTokenInvalidOrExpired, Success: false}, second)
	s.assertPassword("newpass1")
}

func (s *testSuite) TestSiblingTokensAreInvalidated() {
	s.createToken(TOKEN, T0.Add(45*time.Minute))
	s.createToken("sibling-token", T0.Add(45*time.Minute))

	result, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass1"))

	s.Nil(err)
	s.True(result.Success)
	s.Empty(s.TokenRepository.ActiveForUser(s.User.ID, s.Now))
}

func (s *testSuite) TestPasswordsMismatch() {
	s.createToken(TOKEN, T0.Add(45*time.Minute))
	s.TokenRepository.ReturnError = true
	before := s.TokenRepository.Snapshot()

	result, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass2"))

	s.Nil(err)
	s.Equal(Result{Message: passwordreset.MsgPasswordsMismatch, Success: false}, result)
	s.Nil(s.Uow.Context)
	s.Equal(before, s.TokenRepository.Snapshot())
	s.assertPassword(OLD_PASSWORD)
}

func (s *testSuite) TestInvalidToken() {
	cases := []struct {
		id    string
		setup func()
	}{
		{id: "unknown", setup: func() {}},
		{id: "expired", setup: func() { s.createToken(TOKEN, T0.Add(-time.Minute)) }},
		{id: "used", setup: func() {
			t := s.createToken(TOKEN, T0.Add(time.Hour))
			s.Nil(s.TokenRepository.MarkUsed(context.Background(), t.ID))
		}},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			testcase.setup()

			result, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass1"))

			s.Nil(err)
			s.Equal(Result{Message: passwordreset.MsgTokenInvalidOrExpired, Success: false}, result)
			s.assertPassword(OLD_PASSWORD)
		})
	}
}

func (s *testSuite) TestFailureIsAtomic() {
	cases := []struct {
		id    string
		setup func()
	}{
		{id: "hasher", setup: func() { s.Hasher.ReturnError = true }},
		{id: "set password", setup: func() { s.UserRepository.SetPasswordReturnsErr = true }},
		{id: "mark used", setup: func() { s.TokenRepository.MarkUsedReturnsError = true }},
		{id: "invalidate", setup: func() { s.TokenRepository.MarkAllUsedReturnsError = true }},
		{id: "commit", setup: func() { s.Uow.CommitReturnsError = true }},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			s.createToken(TOKEN, T0.Add(time.Hour))
			s.createToken("sibling-token", T0.Add(time.Hour))
			testcase.setup()

			result, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass1"))

			s.Nil(err)
			s.Equal(Result{Message: passwordreset.MsgInternalError, Success: false}, result)
			s.Hasher.ReturnError = false
			s.assertPassword(OLD_PASSWORD)
			s.Len(s.TokenRepository.ActiveForUser(s.User.ID, s.Now), 2)
			s.True(s.Uow.Context.WasRollbackCalled)
		})
	}
}

func (s *testSuite) TestConcurrentConsumersSpendTokenOnce() {
	s.createToken(TOKEN, T0.Add(time.Hour))

	var wg sync.WaitGroup
	var lock sync.Mutex
	succeeded := 0
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			result, err := s.Service.Run(context.Background(), input(TOKEN, "newpass1", "newpass1"))
			if err == nil && result.Success {
				lock.Lock()
				succeeded++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
}

func (s *testSuite) createToken(value passwordreset.Token, expiresAt time.Time) passwordreset.ResetToken {
	s.T().Helper()
	t, err := s.TokenRepository.Create(context.Background(), passwordreset.CreateInput{
		Value:     value,
		UserID:    s.User.ID,
		CreatedAt: T0.Add(-time.Minute),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.FailNow(err.Error())
	}
	return t
}

func (s *testSuite) hash(raw string) user.PasswordHash {
	hash, err := user.NewFakePasswordHasher().HashPassword(user.RawPassword(raw))
	if err != nil {
		panic(err)
	}
	return hash
}

func (s *testSuite) assertPassword(password string) {
	s.T().Helper()
	u, err := s.UserRepository.GetByID(context.Background(), s.User.ID)
	s.Require().NoError(err)
	s.True(s.Hasher.ValidatePassword(user.RawPassword(password), u.PasswordHash))
}

func input(token string, newPassword string, confirmPassword string) Input {
	return Input{
		Token:           passwordreset.Token(token),
		NewPassword:     user.RawPassword(newPassword),
		ConfirmPassword: user.RawPassword(confirmPassword),
	}
}

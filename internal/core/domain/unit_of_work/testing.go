package uow

import (
	"context"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"errors"
	"sync"
)

var ErrFakeUnitOfWorkClosed = errors.New("unit of work is already closed")

// FakeUnitOfWorkContext holds the unit of work lock from Begin until the first
// Commit or Rollback. Rollback restores repository state captured at Begin.
type FakeUnitOfWorkContext struct {
	UserRepository               *user.FakeUserRepository
	PasswordResetTokenRepository *passwordreset.FakeTokenRepository
	WasRollbackCalled            bool
	WasCommitCalled              bool
	CommitReturnsError           bool

	users  []user.User
	tokens []passwordreset.ResetToken
	closed bool
	unlock func()
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	if c.closed {
		return ErrFakeUnitOfWorkClosed
	}
	c.closed = true
	c.WasRollbackCalled = true
	c.UserRepository.Restore(c.users)
	c.PasswordResetTokenRepository.Restore(c.tokens)
	c.unlock()
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.closed {
		return ErrFakeUnitOfWorkClosed
	}
	if c.CommitReturnsError {
		return errors.New("could not commit unit of work")
	}
	c.closed = true
	c.WasCommitCalled = true
	c.unlock()
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) PasswordResetTokens() passwordreset.TokenRepository {
	return c.PasswordResetTokenRepository
}

type FakeUnitOfWork struct {
	UserRepository               *user.FakeUserRepository
	PasswordResetTokenRepository *passwordreset.FakeTokenRepository
	// Context is the most recently started unit of work.
	Context            *FakeUnitOfWorkContext
	BeginReturnsError  bool
	CommitReturnsError bool
	lock               sync.Mutex
}

func NewFakeUnitOfWork(
	userRepository *user.FakeUserRepository,
	passwordResetTokenRepository *passwordreset.FakeTokenRepository,
) *FakeUnitOfWork {
	return &FakeUnitOfWork{
		UserRepository:               userRepository,
		PasswordResetTokenRepository: passwordResetTokenRepository,
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginReturnsError {
		return nil, errors.New("could not begin unit of work")
	}
	u.lock.Lock()
	c := &FakeUnitOfWorkContext{
		UserRepository:               u.UserRepository,
		PasswordResetTokenRepository: u.PasswordResetTokenRepository,
		CommitReturnsError:           u.CommitReturnsError,
		users:                        u.UserRepository.Snapshot(),
		tokens:                       u.PasswordResetTokenRepository.Snapshot(),
		unlock:                       u.lock.Unlock,
	}
	u.Context = c
	return c, nil
}

package uow

import (
	"context"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	PasswordResetTokens() passwordreset.TokenRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}

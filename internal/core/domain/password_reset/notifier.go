package passwordreset

import (
	"context"
	"enemauth/internal/core/domain/user"
)

type TokenGenerator interface {
	GeneratePasswordResetToken() (Token, error)
}

type Notifier interface {
	SendPasswordResetToken(ctx context.Context, u user.User, token Token) error
}

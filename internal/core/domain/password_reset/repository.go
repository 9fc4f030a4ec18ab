package passwordreset

import (
	"context"
	"enemauth/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	Value     Token
	UserID    user.ID
	CreatedAt time.Time
	ExpiresAt time.Time
}

type TokenRepository interface {
	Create(ctx context.Context, input CreateInput) (ResetToken, error)
	HasRecentActiveToken(ctx context.Context, userID user.ID, since time.Time, now time.Time) (bool, error)
	GetActiveByValue(ctx context.Context, value Token, now time.Time) (ResetToken, error)
	// GetActiveByValueWithLock works only within a unit of work.
	GetActiveByValueWithLock(ctx context.Context, value Token, now time.Time) (ResetToken, error)
	MarkUsed(ctx context.Context, id ID) error
	MarkAllUsedForUser(ctx context.Context, userID user.ID) error
	DeleteExpired(ctx context.Context, now time.Time) (deleted int64, err error)
}

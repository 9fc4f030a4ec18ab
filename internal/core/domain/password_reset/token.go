package passwordreset

import (
	"enemauth/internal/core/domain/user"
	"time"

	"github.com/golang-module/carbon/v2"
	"github.com/google/uuid"
)

// RateLimitWindow is the lookback during which an active token blocks a new reset request.
const RateLimitWindow = 5 * time.Minute

type ID uuid.UUID

func (id ID) String() string {
	return uuid.UUID(id).String()
}

type Token string

func (t Token) String() string {
	return "***"
}

type ResetToken struct {
	ID        ID
	Value     Token
	UserID    user.ID
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

func (t *ResetToken) IsActive(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

func (t *ResetToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func ExpiresAt(createdAt time.Time, ttl time.Duration) time.Time {
	return carbon.Time2Carbon(createdAt).AddSeconds(int(ttl.Seconds())).Carbon2Time().UTC()
}

func RateLimitWindowStart(now time.Time) time.Time {
	return carbon.Time2Carbon(now).SubSeconds(int(RateLimitWindow.Seconds())).Carbon2Time().UTC()
}

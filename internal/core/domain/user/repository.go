package user

import (
	"context"
	c "enemauth/internal/core/domain/common"
)

type UserRepository interface {
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByEmailWithLock works only within a unit of work: the user row stays
	// locked until the unit of work is committed or rolled back.
	GetByEmailWithLock(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

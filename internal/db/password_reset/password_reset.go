package passwordreset

import (
	"context"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/db"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const VALUE_CONSTRAINT_NAME = "password_reset_token_value_idx"

const tokenColumns = "id, value, user_id, created_at, expires_at, used"

type PgxTokenRepository struct {
	db db.DBTX
}

func NewPgxTokenRepository(db db.DBTX) *PgxTokenRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxTokenRepository{db: db}
}

func (r *PgxTokenRepository) Create(
	ctx context.Context,
	input passwordreset.CreateInput,
) (t passwordreset.ResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset_token (id, value, user_id, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING `+tokenColumns,
		encodeID(passwordreset.ID(uuid.New())),
		string(input.Value),
		int64(input.UserID),
		encodeTime(input.CreatedAt),
		encodeTime(input.ExpiresAt),
	)
	t, err = scanToken(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == db.PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == VALUE_CONSTRAINT_NAME {
			return t, passwordreset.ErrTokenAlreadyExists
		}
	}
	if err != nil {
		return t, fmt.Errorf("could not create password reset token for user %d: %w", input.UserID, err)
	}
	return t, nil
}

func (r *PgxTokenRepository) HasRecentActiveToken(
	ctx context.Context,
	userID user.ID,
	since time.Time,
	now time.Time,
) (exists bool, err error) {
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM password_reset_token
			WHERE user_id = $1 AND created_at >= $2 AND NOT used AND expires_at > $3
		)`,
		int64(userID),
		encodeTime(since),
		encodeTime(now),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check recent tokens for user %d: %w", userID, err)
	}
	return exists, nil
}

func (r *PgxTokenRepository) GetActiveByValue(
	ctx context.Context,
	value passwordreset.Token,
	now time.Time,
) (passwordreset.ResetToken, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+tokenColumns+` FROM password_reset_token
		WHERE value = $1 AND NOT used AND expires_at > $2`,
		string(value),
		encodeTime(now),
	)
	return scanToken(row)
}

func (r *PgxTokenRepository) GetActiveByValueWithLock(
	ctx context.Context,
	value passwordreset.Token,
	now time.Time,
) (passwordreset.ResetToken, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+tokenColumns+` FROM password_reset_token
		WHERE value = $1 AND NOT used AND expires_at > $2
		FOR UPDATE`,
		string(value),
		encodeTime(now),
	)
	return scanToken(row)
}

func (r *PgxTokenRepository) MarkUsed(ctx context.Context, id passwordreset.ID) error {
	tag, err := r.db.Exec(ctx, `UPDATE password_reset_token SET used = true WHERE id = $1`, encodeID(id))
	if err != nil {
		return fmt.Errorf("could not mark password reset token %s as used: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return passwordreset.ErrTokenDoesNotExist
	}
	return nil
}

func (r *PgxTokenRepository) MarkAllUsedForUser(ctx context.Context, userID user.ID) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE password_reset_token SET used = true WHERE user_id = $1 AND NOT used`,
		int64(userID),
	)
	if err != nil {
		return fmt.Errorf("could not invalidate password reset tokens for user %d: %w", userID, err)
	}
	return nil
}

func (r *PgxTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_token WHERE expires_at <= $1`, encodeTime(now))
	if err != nil {
		return 0, fmt.Errorf("could not delete expired password reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanToken(row pgx.Row) (t passwordreset.ResetToken, err error) {
	var (
		id        pgtype.UUID
		value     string
		userID    int64
		createdAt pgtype.Timestamptz
		expiresAt pgtype.Timestamptz
	)
	err = row.Scan(&id, &value, &userID, &createdAt, &expiresAt, &t.Used)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, passwordreset.ErrTokenDoesNotExist
	}
	if err != nil {
		return t, err
	}
	t.ID = passwordreset.ID(id.Bytes)
	t.Value = passwordreset.Token(value)
	t.UserID = user.ID(userID)
	t.CreatedAt = createdAt.Time.UTC()
	t.ExpiresAt = expiresAt.Time.UTC()
	return t, nil
}

func encodeID(id passwordreset.ID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Status: pgtype.Present}
}

func encodeTime(at time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: at, Status: pgtype.Present}
}

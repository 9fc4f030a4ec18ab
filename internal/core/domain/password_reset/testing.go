package passwordreset

import (
	"context"
	"enemauth/internal/core/domain/user"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type FakeTokenRepository struct {
	Tokens []ResetToken

	ReturnError               bool
	CreateReturnsError        bool
	MarkUsedReturnsError      bool
	MarkAllUsedReturnsError   bool
	DeleteExpiredReturnsError bool
	lock                      sync.Mutex
}

func NewFakeTokenRepository() *FakeTokenRepository {
	return &FakeTokenRepository{Tokens: make([]ResetToken, 0, 10)}
}

func (r *FakeTokenRepository) Create(ctx context.Context, input CreateInput) (t ResetToken, err error) {
	if r.ReturnError || r.CreateReturnsError {
		return t, fmt.Errorf("could not create password reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Tokens {
		if existing.Value == input.Value {
			return t, ErrTokenAlreadyExists
		}
	}
	t = ResetToken{
		ID:        ID(uuid.New()),
		Value:     input.Value,
		UserID:    input.UserID,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakeTokenRepository) HasRecentActiveToken(
	ctx context.Context,
	userID user.ID,
	since time.Time,
	now time.Time,
) (bool, error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not check recent tokens for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.UserID == userID && t.CreatedAt.After(since) && t.IsActive(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeTokenRepository) GetActiveByValue(ctx context.Context, value Token, now time.Time) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Value == value && t.IsActive(now) {
			return t, nil
		}
	}
	return t, ErrTokenDoesNotExist
}

func (r *FakeTokenRepository) GetActiveByValueWithLock(ctx context.Context, value Token, now time.Time) (ResetToken, error) {
	return r.GetActiveByValue(ctx, value, now)
}

func (r *FakeTokenRepository) MarkUsed(ctx context.Context, id ID) error {
	if r.ReturnError || r.MarkUsedReturnsError {
		return fmt.Errorf("could not mark password reset token %s as used", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.ID == id {
			r.Tokens[ix].Used = true
			return nil
		}
	}
	return ErrTokenDoesNotExist
}

func (r *FakeTokenRepository) MarkAllUsedForUser(ctx context.Context, userID user.ID) error {
	if r.ReturnError || r.MarkAllUsedReturnsError {
		return fmt.Errorf("could not invalidate password reset tokens for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.UserID == userID {
			r.Tokens[ix].Used = true
		}
	}
	return nil
}

func (r *FakeTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if r.ReturnError || r.DeleteExpiredReturnsError {
		return 0, fmt.Errorf("could not delete expired password reset tokens")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := make([]ResetToken, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		if !t.IsExpired(now) {
			kept = append(kept, t)
		}
	}
	deleted := int64(len(r.Tokens) - len(kept))
	r.Tokens = kept
	return deleted, nil
}

// Get returns a copy of the token with the given value, regardless of its state.
func (r *FakeTokenRepository) Get(value Token) (t ResetToken, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Value == value {
			return t, true
		}
	}
	return t, false
}

func (r *FakeTokenRepository) ActiveForUser(userID user.ID, now time.Time) []ResetToken {
	r.lock.Lock()
	defer r.lock.Unlock()
	active := make([]ResetToken, 0)
	for _, t := range r.Tokens {
		if t.UserID == userID && t.IsActive(now) {
			active = append(active, t)
		}
	}
	return active
}

func (r *FakeTokenRepository) Snapshot() []ResetToken {
	r.lock.Lock()
	defer r.lock.Unlock()
	tokens := make([]ResetToken, len(r.Tokens))
	copy(tokens, r.Tokens)
	return tokens
}

func (r *FakeTokenRepository) Restore(tokens []ResetToken) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Tokens = tokens
}

type FakeTokenGenerator struct {
	Prefix      string
	ReturnError bool
	counter     int
	lock        sync.Mutex
}

func NewFakeTokenGenerator(prefix string) *FakeTokenGenerator {
	return &FakeTokenGenerator{Prefix: prefix}
}

func (g *FakeTokenGenerator) GeneratePasswordResetToken() (Token, error) {
	if g.ReturnError {
		return Token(""), fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	g.counter++
	return Token(fmt.Sprintf("%s-%d", g.Prefix, g.counter)), nil
}

type FakeNotifier struct {
	Sent        []Token
	SentTo      []user.User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) SendPasswordResetToken(ctx context.Context, u user.User, token Token) error {
	if n.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Sent = append(n.Sent, token)
	n.SentTo = append(n.SentTo, u)
	return nil
}

func (n *FakeNotifier) SentCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.Sent)
}

func (n *FakeNotifier) LastSent() Token {
	n.lock.Lock()
	defer n.lock.Unlock()
	l := len(n.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return n.Sent[l-1]
}

package requestpasswordreset

import (
	"context"
	c "enemauth/internal/core/domain/common"
	e "enemauth/internal/core/domain/errors"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	uow "enemauth/internal/core/domain/unit_of_work"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/core/services"
	"errors"
	"fmt"
	"time"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("password-reset::%s", i.Email)
}

type Result struct {
	Message string
	Success bool
}

type service struct {
	log            logging.Logger
	uow            uow.UnitOfWork
	tokenGenerator passwordreset.TokenGenerator
	notifier       passwordreset.Notifier
	now            func() time.Time
	tokenTTL       time.Duration
}

func New(
	log logging.Logger,
	uow uow.UnitOfWork,
	tokenGenerator passwordreset.TokenGenerator,
	notifier passwordreset.Notifier,
	now func() time.Time,
	tokenTTL time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if uow == nil {
		panic(e.NewNilArgumentError("uow"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if tokenTTL <= 0 {
		panic("tokenTTL must be positive")
	}
	return &service{
		log:            log,
		uow:            uow,
		tokenGenerator: tokenGenerator,
		notifier:       notifier,
		now:            now,
		tokenTTL:       tokenTTL,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not process password reset request.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return Result{Message: passwordreset.MsgInternalError, Success: false}, nil
	}
	return result, nil
}

func (s *service) run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("could not begin unit of work: %w", err)
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByEmailWithLock(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Unknown emails get exactly the same response as known ones.
		s.log.Warning(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return accepted(), nil
	}
	if err != nil {
		return result, fmt.Errorf("could not get user by email: %w", err)
	}

	now := s.now()
	hasRecentToken, err := uow.PasswordResetTokens().HasRecentActiveToken(
		ctx,
		u.ID,
		passwordreset.RateLimitWindowStart(now),
		now,
	)
	if err != nil {
		return result, fmt.Errorf("could not check recent password reset tokens: %w", err)
	}
	if hasRecentToken {
		s.log.Info(ctx, "Password reset request is rate limited.", logging.Entry("userID", u.ID))
		return Result{Message: passwordreset.MsgRequestRateLimited, Success: false}, nil
	}

	if err := uow.PasswordResetTokens().MarkAllUsedForUser(ctx, u.ID); err != nil {
		return result, fmt.Errorf("could not invalidate previous password reset tokens: %w", err)
	}

	value, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		return result, fmt.Errorf("could not generate password reset token: %w", err)
	}
	token, err := uow.PasswordResetTokens().Create(
		ctx,
		passwordreset.CreateInput{
			Value:     value,
			UserID:    u.ID,
			CreatedAt: now,
			ExpiresAt: passwordreset.ExpiresAt(now, s.tokenTTL),
		},
	)
	if err != nil {
		return result, fmt.Errorf("could not create password reset token: %w", err)
	}

	// A failed notification rolls the new token back.
	if err := s.notifier.SendPasswordResetToken(ctx, u, token.Value); err != nil {
		return result, fmt.Errorf("could not send password reset token: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return result, fmt.Errorf("could not commit unit of work: %w", err)
	}

	s.log.Info(
		ctx,
		"Password reset token has been created and sent.",
		logging.Entry("userID", u.ID),
		logging.Entry("tokenID", token.ID),
		logging.Entry("expiresAt", token.ExpiresAt),
	)
	return accepted(), nil
}

func accepted() Result {
	return Result{Message: passwordreset.MsgRequestAccepted, Success: true}
}

package resetpassword

import (
	"context"
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
	Token           passwordreset.Token
	NewPassword     user.RawPassword
	ConfirmPassword user.RawPassword
}

type Result struct {
	Message string
	Success bool
}

type service struct {
	log            logging.Logger
	uow            uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	uow uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if uow == nil {
		panic(e.NewNilArgumentError("uow"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		uow:            uow,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.NewPassword != input.ConfirmPassword {
		return Result{Message: passwordreset.MsgPasswordsMismatch, Success: false}, nil
	}

	result, err = s.run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not reset password.", logging.Entry("err", err))
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

	// The row lock makes a concurrent consumer of the same token wait and
	// then observe it as used.
	token, err := uow.PasswordResetTokens().GetActiveByValueWithLock(ctx, input.Token, s.now())
	if errors.Is(err, passwordreset.ErrTokenDoesNotExist) {
		return Result{Message: passwordreset.MsgTokenInvalidOrExpired, Success: false}, nil
	}
	if err != nil {
		return result, fmt.Errorf("could not get password reset token: %w", err)
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		return result, fmt.Errorf("could not hash password: %w", err)
	}
	if err := uow.Users().SetPassword(ctx, token.UserID, newPasswordHash); err != nil {
		return result, fmt.Errorf("could not set password for user %d: %w", token.UserID, err)
	}
	if err := uow.PasswordResetTokens().MarkUsed(ctx, token.ID); err != nil {
		return result, fmt.Errorf("could not mark password reset token as used: %w", err)
	}
	if err := uow.PasswordResetTokens().MarkAllUsedForUser(ctx, token.UserID); err != nil {
		return result, fmt.Errorf("could not invalidate password reset tokens: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return result, fmt.Errorf("could not commit unit of work: %w", err)
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", token.UserID),
		logging.Entry("tokenID", token.ID),
	)
	return Result{Message: passwordreset.MsgPasswordReset, Success: true}, nil
}

package validatepasswordresettoken

import (
	"context"
	c "enemauth/internal/core/domain/common"
	e "enemauth/internal/core/domain/errors"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/core/services"
	"errors"
	"time"
)

type Input struct {
	Token passwordreset.Token
}

type Result struct {
	Valid   bool
	Message string
	Email   c.Optional[c.Email]
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository passwordreset.TokenRepository
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository passwordreset.TokenRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	token, err := s.tokenRepository.GetActiveByValue(ctx, input.Token, s.now())
	if errors.Is(err, passwordreset.ErrTokenDoesNotExist) {
		return invalid(passwordreset.MsgTokenInvalidOrExpired), nil
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return invalid(passwordreset.MsgTokenValidationError), nil
	}

	u, err := s.userRepository.GetByID(ctx, token.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get owner of password reset token.",
			logging.Entry("userID", token.UserID),
			logging.Entry("err", err),
		)
		return invalid(passwordreset.MsgTokenValidationError), nil
	}

	return Result{
		Valid:   true,
		Message: passwordreset.MsgTokenValid,
		Email:   c.NewOptional(u.Email, true),
	}, nil
}

func invalid(msg string) Result {
	return Result{Valid: false, Message: msg, Email: c.NewOptional(c.Email(""), false)}
}

package sweepexpiredpasswordresettokens

import (
	"context"
	e "enemauth/internal/core/domain/errors"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	Deleted int64
}

type service struct {
	log             logging.Logger
	tokenRepository passwordreset.TokenRepository
	now             func() time.Time
}

func New(
	log logging.Logger,
	tokenRepository passwordreset.TokenRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
		now:             now,
	}
}

// Run never returns an error, failures are only logged.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	deleted, err := s.tokenRepository.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete expired password reset tokens.",
			logging.Entry("now", now),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Expired password reset tokens have been deleted.",
		logging.Entry("deleted", deleted),
		logging.Entry("now", now),
	)
	return Result{Deleted: deleted}, nil
}

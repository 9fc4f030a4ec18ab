package services

import (
	"enemauth/internal/app/deps"
	"enemauth/internal/core/services"
	ratelimiting "enemauth/internal/core/services/rate_limiting"
	requestpasswordreset "enemauth/internal/core/services/request_password_reset"
	resetpassword "enemauth/internal/core/services/reset_password"
	sweepexpiredpasswordresettokens "enemauth/internal/core/services/sweep_expired_password_reset_tokens"
	validatepasswordresettoken "enemauth/internal/core/services/validate_password_reset_token"
)

type Services struct {
	RequestPasswordReset       services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	ValidatePasswordResetToken services.Service[validatepasswordresettoken.Input, validatepasswordresettoken.Result]
	ResetPassword              services.Service[resetpassword.Input, resetpassword.Result]

	SweepExpiredPasswordResetTokens services.Service[
		sweepexpiredpasswordresettokens.Input,
		sweepexpiredpasswordresettokens.Result,
	]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RequestPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		deps.PasswordResetRateLimit,
		requestpasswordreset.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordResetTokenGenerator,
			deps.PasswordResetNotifier,
			deps.Now,
			deps.PasswordResetTokenTTL,
		),
	)
	s.ValidatePasswordResetToken = validatepasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenRepository,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.SweepExpiredPasswordResetTokens = sweepexpiredpasswordresettokens.New(
		deps.Logger,
		deps.PasswordResetTokenRepository,
		deps.Now,
	)

	return s
}

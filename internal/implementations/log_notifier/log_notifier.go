package lognotifier

import (
	"context"
	e "enemauth/internal/core/domain/errors"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
)

// Notifier writes password reset tokens to the log instead of delivering them.
// Meant for local runs only.
type Notifier struct {
	log logging.Logger
}

func New(log logging.Logger) *Notifier {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Notifier{log: log}
}

func (n *Notifier) SendPasswordResetToken(ctx context.Context, u user.User, token passwordreset.Token) error {
	n.log.Info(
		ctx,
		"Password reset token issued.",
		logging.Entry("userID", u.ID),
		logging.Entry("email", u.Email),
		logging.Entry("token", string(token)),
	)
	return nil
}

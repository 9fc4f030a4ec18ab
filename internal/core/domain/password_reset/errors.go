package passwordreset

import "errors"

var (
	ErrTokenDoesNotExist  = errors.New("password reset token does not exist")
	ErrTokenAlreadyExists = errors.New("password reset token already exists")
)

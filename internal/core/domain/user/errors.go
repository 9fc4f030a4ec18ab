package user

import (
	"errors"
)

var (
	ErrUserDoesNotExist = errors.New("user does not exist")
)

package tokengenerator

import (
	"crypto/rand"
	"encoding/base64"
	passwordreset "enemauth/internal/core/domain/password_reset"
)

const passwordResetTokenBytes = 32

type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: passwordResetTokenBytes}
}

func (g *Generator) GeneratePasswordResetToken() (passwordreset.Token, error) {
	b := make([]byte, g.size)
	if _, err := rand.Read(b); err != nil {
		return passwordreset.Token(""), err
	}
	return passwordreset.Token(base64.RawURLEncoding.EncodeToString(b)), nil
}

package passwordhasher

import (
	"enemauth/internal/core/domain/user"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordValid(t *testing.T) {
	cases := []struct {
		secret   string
		cost     int
		password string
	}{
		{secret: "test", cost: 5, password: "test"},
		{secret: "", cost: 5, password: ""},
		{secret: "a", cost: 7, password: "password password"},
		{secret: "   b   ", cost: 10, password: "   test   "},
	}
	for ix, c := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			h := NewBcrypt(c.secret, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, h.ValidatePassword(user.RawPassword(c.password), hash))
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	cases := []struct {
		secretToHash    string
		secretToCheck   string
		passwordToHash  string
		passwordToCheck string
	}{
		{secretToHash: "test", secretToCheck: "test", passwordToHash: "test", passwordToCheck: "test "},
		{secretToHash: "test", secretToCheck: "test ", passwordToHash: "test", passwordToCheck: "test"},
		{secretToHash: "", secretToCheck: "", passwordToHash: "", passwordToCheck: " "},
		{secretToHash: "a", secretToCheck: "a", passwordToHash: "newpass1", passwordToCheck: "newpass2"},
	}
	for ix, c := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			hash, err := NewBcrypt(c.secretToHash, 5).HashPassword(user.RawPassword(c.passwordToHash))
			require.NoError(t, err)

			h := NewBcrypt(c.secretToCheck, 5)
			require.False(t, h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcrypt("secret", 5)
	first, err := h.HashPassword("newpass1")
	require.NoError(t, err)
	second, err := h.HashPassword("newpass1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestInvalidCost(t *testing.T) {
	require.Panics(t, func() { NewBcrypt("secret", 100) })
}

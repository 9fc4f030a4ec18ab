package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordResetRequested(t *testing.T) {
	msg := PasswordResetRequested{UserID: 42, Email: "test@test.test", Token: "token-1"}

	data, err := msg.Marshal()
	require.Nil(t, err)
	require.JSONEq(t, `{"userId": 42, "email": "test@test.test", "token": "token-1"}`, string(data))

	decoded := PasswordResetRequested{}
	require.Nil(t, decoded.Unmarshal(data))
	require.Equal(t, msg, decoded)
}

func TestPasswordResetRequestedIncomplete(t *testing.T) {
	cases := []string{
		`{"userId": 42, "token": "token-1"}`,
		`{"userId": 42, "email": "test@test.test"}`,
		`not json`,
	}
	for _, body := range cases {
		decoded := PasswordResetRequested{}
		require.NotNil(t, decoded.Unmarshal([]byte(body)), body)
	}
}

package schema

import (
	"encoding/json"
	"fmt"
)

// PasswordResetRequested is published when a reset token has been issued and
// must be delivered to the account owner.
type PasswordResetRequested struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (m *PasswordResetRequested) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetRequested) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	if m.Email == "" || m.Token == "" {
		return fmt.Errorf("password reset message for user %d is incomplete", m.UserID)
	}
	return nil
}

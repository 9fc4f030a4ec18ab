package passwordresetrequested

import (
	"context"
	c "enemauth/internal/core/domain/common"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/rabbitmq/schema"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	routingKeys []string
	published   []amqp091.Publishing
	err         error
}

func (ch *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange string,
	key string,
	mandatory bool,
	immediate bool,
	msg amqp091.Publishing,
) error {
	if ch.err != nil {
		return ch.err
	}
	ch.routingKeys = append(ch.routingKeys, key)
	ch.published = append(ch.published, msg)
	return nil
}

func TestSendPasswordResetToken(t *testing.T) {
	channel := &fakeChannel{}
	p := NewRabbitMQ(logging.NewFakeLogger(), channel, "", "password-reset-requested")

	err := p.SendPasswordResetToken(
		context.Background(),
		user.User{ID: 42, Email: c.Email("test@test.test")},
		passwordreset.Token("token-1"),
	)

	require.Nil(t, err)
	require.Equal(t, []string{"password-reset-requested"}, channel.routingKeys)
	require.Equal(t, "application/json", channel.published[0].ContentType)
	require.Equal(t, amqp091.Persistent, channel.published[0].DeliveryMode)

	msg := schema.PasswordResetRequested{}
	require.Nil(t, msg.Unmarshal(channel.published[0].Body))
	require.Equal(t, schema.PasswordResetRequested{UserID: 42, Email: "test@test.test", Token: "token-1"}, msg)
}

func TestSendPasswordResetTokenPublishFailed(t *testing.T) {
	logger := logging.NewFakeLogger()
	channel := &fakeChannel{err: errors.New("channel closed")}
	p := NewRabbitMQ(logger, channel, "", "password-reset-requested")

	err := p.SendPasswordResetToken(
		context.Background(),
		user.User{ID: 42, Email: c.Email("test@test.test")},
		passwordreset.Token("token-1"),
	)

	require.NotNil(t, err)
	require.Equal(t, 1, logger.Count(logging.ERROR))
}

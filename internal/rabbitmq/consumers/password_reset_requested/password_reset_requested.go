package passwordresetrequested

import (
	"context"
	c "enemauth/internal/core/domain/common"
	e "enemauth/internal/core/domain/errors"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/rabbitmq"
	"enemauth/internal/rabbitmq/schema"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

var errMalformedMessage = errors.New("malformed password reset message")

// Consumer delivers password reset tokens published by the API through the
// given notifier (SES in production).
type Consumer struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	queue    string
	notifier passwordreset.Notifier
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	notifier passwordreset.Notifier,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, notifier: notifier}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "")
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.process(delivery)
		}
	}()
	return nil
}

func (c *Consumer) process(delivery amqp091.Delivery) {
	ctx := context.Background()
	err := handle(ctx, c.notifier, delivery.Body)
	if err == nil {
		c.ack(delivery)
		return
	}

	if errors.Is(err, errMalformedMessage) || delivery.Redelivered {
		c.log.Error(ctx, "Dropping password reset message.", logging.Entry("err", err))
		c.ack(delivery)
		return
	}

	c.log.Warning(ctx, "Could not deliver password reset token, message requeued.", logging.Entry("err", err))
	if err := delivery.Nack(false, true); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func handle(ctx context.Context, notifier passwordreset.Notifier, body []byte) error {
	msg := schema.PasswordResetRequested{}
	if err := msg.Unmarshal(body); err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	u := user.User{ID: user.ID(msg.UserID), Email: c.NewEmail(msg.Email)}
	if err := notifier.SendPasswordResetToken(ctx, u, passwordreset.Token(msg.Token)); err != nil {
		return fmt.Errorf("could not deliver password reset token to user %d: %w", msg.UserID, err)
	}
	return nil
}

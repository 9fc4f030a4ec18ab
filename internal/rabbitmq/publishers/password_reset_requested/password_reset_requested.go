package passwordresetrequested

import (
	"context"
	e "enemauth/internal/core/domain/errors"
	"enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/rabbitmq/schema"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ hands reset tokens over to the notifier worker instead of sending
// emails from the request path.
type RabbitMQ struct {
	log        logging.Logger
	channel    publisher
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel publisher, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if routingKey == "" {
		panic("routing key must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (p *RabbitMQ) SendPasswordResetToken(ctx context.Context, u user.User, token passwordreset.Token) error {
	msg := schema.PasswordResetRequested{UserID: int64(u.ID), Email: string(u.Email), Token: string(token)}
	body, err := msg.Marshal()
	if err != nil {
		return fmt.Errorf("could not marshal password reset message: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		p.log.Error(
			ctx,
			"Could not publish AMQP message.",
			logging.Entry("routingKey", p.routingKey),
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", p.routingKey),
		logging.Entry("userID", u.ID),
	)
	return nil
}

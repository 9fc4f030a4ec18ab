package consumers

import (
	"context"
	"enemauth/internal/app/deps"
	dl "enemauth/internal/core/domain/logging"
	passwordresetrequested "enemauth/internal/rabbitmq/consumers/password_reset_requested"
)

func initPasswordResetRequestedConsumer(deps *deps.Deps) func() {
	if deps.PasswordResetEmailSender == nil {
		panic("AWS_EMAIL_SENDER must be set to deliver password reset tokens")
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetRequestedQueue
	if err = rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	consumer := passwordresetrequested.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.PasswordResetEmailSender,
	)
	if err = consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	if deps.Rabbitmq == nil {
		panic("RABBITMQ_URL must be set to run consumers")
	}
	shutdownPasswordResetRequestedConsumer := initPasswordResetRequestedConsumer(deps)

	return func() {
		shutdownPasswordResetRequestedConsumer()
	}
}

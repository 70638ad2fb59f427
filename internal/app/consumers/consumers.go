package consumers

import (
	"context"

	"mindlog/internal/app/deps"
	dl "mindlog/internal/core/domain/logging"
	sendreminderemail "mindlog/internal/core/services/send_reminder_email"
	reminderemail "mindlog/internal/rabbitmq/consumers/reminder_email"
)

func initReminderEmailConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqReminderQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	service := sendreminderemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.EmailSender,
	)
	consumer := reminderemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		service,
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
	shutdownReminderEmailConsumer := initReminderEmailConsumer(deps)

	return func() {
		shutdownReminderEmailConsumer()
	}
}

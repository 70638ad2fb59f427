package notifier

import (
	"context"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/rabbitmq"
	"mindlog/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// AMQP hands reminders off to the worker queue for email delivery.
type AMQP struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewAMQP(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *AMQP {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &AMQP{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *AMQP) Notify(ctx context.Context, n notification.Notification) error {
	msg := schema.NewNotification(n)
	body, err := msg.Marshal()
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("userID", n.UserID),
		logging.Entry("medicationID", n.MedicationID),
	)
	return nil
}

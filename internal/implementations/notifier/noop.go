package notifier

import (
	"context"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/notification"
)

// Noop only logs the reminder, used for local development.
type Noop struct {
	log logging.Logger
}

func NewNoop(log logging.Logger) *Noop {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Noop{log: log}
}

func (s *Noop) Notify(ctx context.Context, n notification.Notification) error {
	s.log.Info(
		ctx,
		"Reminder has been sent.",
		logging.Entry("userID", n.UserID),
		logging.Entry("medicationID", n.MedicationID),
		logging.Entry("body", n.Body),
	)
	return nil
}

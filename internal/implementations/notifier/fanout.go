package notifier

import (
	"context"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/notification"
)

// Fanout delivers a reminder through every configured notifier. One
// failing channel does not stop the others.
type Fanout struct {
	log       logging.Logger
	notifiers []notification.Notifier
}

func NewFanout(log logging.Logger, notifiers ...notification.Notifier) *Fanout {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Fanout{log: log, notifiers: notifiers}
}

func (s *Fanout) Notify(ctx context.Context, n notification.Notification) error {
	var lastErr error
	for _, notifier := range s.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("medicationID", n.MedicationID))
			lastErr = err
		}
	}
	return lastErr
}

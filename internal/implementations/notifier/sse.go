package notifier

import (
	"context"
	"encoding/json"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/notification"

	"github.com/r3labs/sse/v2"
)

// SSE pushes reminders to the user's open event stream. The stream ID
// is the user ID, matching what the events handler subscribes to.
type SSE struct {
	log       logging.Logger
	sseServer *sse.Server
}

func NewSSE(log logging.Logger, sseServer *sse.Server) *SSE {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &SSE{log: log, sseServer: sseServer}
}

type ssePayload struct {
	Type         string   `json:"type"`
	MedicationID string   `json:"medicationId"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Actions      []string `json:"actions"`
}

func (s *SSE) Notify(ctx context.Context, n notification.Notification) error {
	actions := make([]string, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, string(a))
	}
	data, err := json.Marshal(ssePayload{
		Type:         "medication-reminder",
		MedicationID: string(n.MedicationID),
		Title:        n.Title,
		Body:         n.Body,
		Actions:      actions,
	})
	if err != nil {
		return err
	}

	streamID := string(n.UserID)
	if !s.sseServer.StreamExists(streamID) {
		s.log.Info(
			ctx,
			"User has no open event stream, reminder not pushed.",
			logging.Entry("userID", n.UserID),
			logging.Entry("medicationID", n.MedicationID),
		)
		return nil
	}

	s.sseServer.Publish(streamID, &sse.Event{Data: data})
	s.log.Info(
		ctx,
		"Reminder pushed to user event stream.",
		logging.Entry("userID", n.UserID),
		logging.Entry("medicationID", n.MedicationID),
	)
	return nil
}

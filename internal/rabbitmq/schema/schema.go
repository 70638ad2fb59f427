package schema

import (
	"encoding/json"

	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"
)

// Notification is the wire form of a medication reminder handed off
// to the worker for email delivery.
type Notification struct {
	UserID       string   `json:"userId"`
	MedicationID string   `json:"medicationId"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Actions      []string `json:"actions"`
}

func NewNotification(n notification.Notification) Notification {
	actions := make([]string, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, string(a))
	}
	return Notification{
		UserID:       string(n.UserID),
		MedicationID: string(n.MedicationID),
		Title:        n.Title,
		Body:         n.Body,
		Actions:      actions,
	}
}

func (n *Notification) ToDomain() notification.Notification {
	actions := make([]notification.Action, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, notification.Action(a))
	}
	return notification.Notification{
		UserID:       user.ID(n.UserID),
		MedicationID: medication.ID(n.MedicationID),
		Title:        n.Title,
		Body:         n.Body,
		Actions:      actions,
	}
}

func (n *Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, n)
}

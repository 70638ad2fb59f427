package notification

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
)

// Permission mirrors the user's notification consent. Only Granted
// allows reminders to be delivered; Default means the user has not
// decided yet.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

type Action string

const (
	ActionTaken   Action = "taken"
	ActionSnooze  Action = "snooze"
	ActionDismiss Action = "dismiss"
)

const REMINDER_TITLE = "💊 Medication Reminder"

// Notification is one reminder delivery.
type Notification struct {
	UserID       user.ID
	MedicationID medication.ID
	Title        string
	Body         string
	Actions      []Action
}

type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// EmailSender delivers a reminder by email when the user cannot
// receive push-style notifications.
type EmailSender interface {
	SendReminder(ctx context.Context, email c.Email, notification Notification) error
}

type PermissionRepository interface {
	Get(ctx context.Context, userID user.ID) (Permission, error)
	Set(ctx context.Context, userID user.ID, permission Permission) error
}

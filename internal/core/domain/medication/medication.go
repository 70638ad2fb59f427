package medication

import (
	"fmt"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/user"
	"time"

	"github.com/golang-module/carbon/v2"
)

type ID string

// Medication is a single medication record together with its reminder
// schedule. ReminderTimes holds wall-clock "HH:MM" entries; an empty
// list means the medication raises no reminders. A present ReminderDate
// makes every entry a one-shot reminder on that calendar date,
// otherwise entries recur daily.
//
// SnoozeUntil lives only in scheduler memory and is never persisted.
type Medication struct {
	ID            ID
	UserID        user.ID
	Name          string
	Dosage        c.Optional[string]
	Frequency     c.Optional[string]
	ReminderTimes []string
	ReminderDate  c.Optional[time.Time]
	IsActive      bool
	SnoozeUntil   c.Optional[time.Time]
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses a 24-hour "HH:MM" string.
func ParseTimeOfDay(value string) (t TimeOfDay, err error) {
	var hour, minute int
	n, err := fmt.Sscanf(value, "%d:%d", &hour, &minute)
	if err != nil || n != 2 {
		return t, ErrInvalidReminderTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return t, ErrInvalidReminderTime
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// FormatTimeOfDay converts a 24-hour "HH:MM" string to "h:MM AM/PM".
// Hour 0 renders as 12 AM, hour 12 as 12 PM.
func FormatTimeOfDay(value string) (string, error) {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		return "", err
	}
	period := "AM"
	if t.Hour >= 12 {
		period = "PM"
	}
	displayHour := t.Hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, t.Minute, period), nil
}

// NextReminderAt computes the next fire instant for one reminder time
// entry, given the current wall-clock instant.
//
// A still-pending snooze overrides the nominal time of day. A one-shot
// reminder whose date-and-time is not strictly in the future is
// exhausted and yields an absent result. A recurring entry whose time
// has passed today rolls forward exactly one calendar day.
func NextReminderAt(
	now time.Time,
	reminderTime string,
	reminderDate c.Optional[time.Time],
	snoozeUntil c.Optional[time.Time],
) (at c.Optional[time.Time], err error) {
	tod, err := ParseTimeOfDay(reminderTime)
	if err != nil {
		return at, err
	}

	if snoozeUntil.IsPresent && snoozeUntil.Value.After(now) {
		return c.NewOptional(snoozeUntil.Value, true), nil
	}

	if reminderDate.IsPresent {
		d := reminderDate.Value
		fireAt := time.Date(d.Year(), d.Month(), d.Day(), tod.Hour, tod.Minute, 0, 0, now.Location())
		if !fireAt.After(now) {
			return at, nil
		}
		return c.NewOptional(fireAt, true), nil
	}

	fireAt := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location())
	if !fireAt.After(now) {
		fireAt = carbon.Time2Carbon(fireAt).AddDay().Carbon2Time()
	}
	return c.NewOptional(fireAt, true), nil
}

// NextReminderTime returns the earliest upcoming fire instant across
// all of the medication's time entries, skipping unparsable entries.
func (m *Medication) NextReminderTime(now time.Time) (earliest c.Optional[time.Time]) {
	for _, reminderTime := range m.ReminderTimes {
		next, err := NextReminderAt(now, reminderTime, m.ReminderDate, m.SnoozeUntil)
		if err != nil || !next.IsPresent {
			continue
		}
		if !earliest.IsPresent || next.Value.Before(earliest.Value) {
			earliest = next
		}
	}
	return earliest
}

// HasReminders reports whether the medication can produce any fires.
func (m *Medication) HasReminders() bool {
	return m.IsActive && len(m.ReminderTimes) > 0
}

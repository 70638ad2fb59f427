package medication

import (
	c "mindlog/internal/core/domain/common"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Now = time.Date(2023, 5, 15, 8, 0, 0, 0, time.UTC)

func TestNextReminderAtRecurring(t *testing.T) {
	cases := []struct {
		id       string
		now      time.Time
		time     string
		expected time.Time
	}{
		{
			id:       "time is still ahead today",
			now:      Now,
			time:     "09:00",
			expected: time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			id:       "time has passed, rolls to tomorrow",
			now:      time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC),
			time:     "09:00",
			expected: time.Date(2023, 5, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			id:       "exact match rolls to tomorrow",
			now:      time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC),
			time:     "09:00",
			expected: time.Date(2023, 5, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			id:       "midnight entry",
			now:      time.Date(2023, 5, 15, 0, 30, 0, 0, time.UTC),
			time:     "00:00",
			expected: time.Date(2023, 5, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			at, err := NextReminderAt(testcase.now, testcase.time, c.Optional[time.Time]{}, c.Optional[time.Time]{})

			require.NoError(t, err)
			require.True(t, at.IsPresent)
			assert.Equal(t, testcase.expected, at.Value)
		})
	}
}

func TestNextReminderAtOneShot(t *testing.T) {
	yesterday := time.Date(2023, 5, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2023, 5, 16, 0, 0, 0, 0, time.UTC)

	t.Run("date in the past never fires", func(t *testing.T) {
		at, err := NextReminderAt(Now, "23:59", c.NewOptional(yesterday, true), c.Optional[time.Time]{})

		require.NoError(t, err)
		assert.False(t, at.IsPresent)
	})

	t.Run("time already passed on the fixed date", func(t *testing.T) {
		today := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
		at, err := NextReminderAt(Now, "07:00", c.NewOptional(today, true), c.Optional[time.Time]{})

		require.NoError(t, err)
		assert.False(t, at.IsPresent)
	})

	t.Run("future date fires once at the given time", func(t *testing.T) {
		at, err := NextReminderAt(Now, "09:30", c.NewOptional(tomorrow, true), c.Optional[time.Time]{})

		require.NoError(t, err)
		require.True(t, at.IsPresent)
		assert.Equal(t, time.Date(2023, 5, 16, 9, 30, 0, 0, time.UTC), at.Value)
	})
}

func TestNextReminderAtSnoozeOverrides(t *testing.T) {
	now := time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)
	snoozeUntil := now.Add(10 * time.Minute)

	// The nominal 09:00 occurrence has passed today; snooze still wins
	// over tomorrow's occurrence.
	at, err := NextReminderAt(now, "09:00", c.Optional[time.Time]{}, c.NewOptional(snoozeUntil, true))

	require.NoError(t, err)
	require.True(t, at.IsPresent)
	assert.Equal(t, snoozeUntil, at.Value)
}

func TestNextReminderAtExpiredSnoozeIsIgnored(t *testing.T) {
	now := time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)
	snoozeUntil := now.Add(-time.Minute)

	at, err := NextReminderAt(now, "09:00", c.Optional[time.Time]{}, c.NewOptional(snoozeUntil, true))

	require.NoError(t, err)
	require.True(t, at.IsPresent)
	assert.Equal(t, time.Date(2023, 5, 16, 9, 0, 0, 0, time.UTC), at.Value)
}

func TestNextReminderAtInvalidTime(t *testing.T) {
	for _, value := range []string{"", "9", "25:00", "12:60", "ab:cd"} {
		_, err := NextReminderAt(Now, value, c.Optional[time.Time]{}, c.Optional[time.Time]{})
		assert.ErrorIs(t, err, ErrInvalidReminderTime, value)
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "00:00", expected: "12:00 AM"},
		{in: "00:05", expected: "12:05 AM"},
		{in: "09:00", expected: "9:00 AM"},
		{in: "12:00", expected: "12:00 PM"},
		{in: "13:30", expected: "1:30 PM"},
		{in: "23:59", expected: "11:59 PM"},
	}

	for _, testcase := range cases {
		t.Run(testcase.in, func(t *testing.T) {
			formatted, err := FormatTimeOfDay(testcase.in)

			require.NoError(t, err)
			assert.Equal(t, testcase.expected, formatted)
		})
	}

	_, err := FormatTimeOfDay("24:00")
	assert.ErrorIs(t, err, ErrInvalidReminderTime)
}

func TestNextReminderTimePicksEarliest(t *testing.T) {
	m := Medication{
		ID:            ID("med-1"),
		Name:          "Sertraline",
		ReminderTimes: []string{"21:00", "oops", "09:00"},
		IsActive:      true,
	}

	next := m.NextReminderTime(Now)

	require.True(t, next.IsPresent)
	assert.Equal(t, time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC), next.Value)
}

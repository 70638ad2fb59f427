package scheduler

import (
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("user-1")

var StartOfDay = time.Date(2023, 5, 15, 8, 0, 0, 0, time.UTC)

// clock is an advanceable fake time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	notifier    *notification.FakeNotifier
	permissions *notification.FakePermissionRepository
	clock       *clock
	scheduler   *Scheduler
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.notifier = notification.NewFakeNotifier()
	suite.permissions = notification.NewFakePermissionRepository()
	suite.permissions.Permissions[USER_ID] = notification.PermissionGranted
	suite.clock = &clock{now: StartOfDay}
	suite.scheduler = New(suite.logger, suite.notifier, suite.permissions, suite.clock.Now)
}

func TestScheduler(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) medication(id string, times ...string) medication.Medication {
	return medication.Medication{
		ID:            medication.ID(id),
		UserID:        USER_ID,
		Name:          "Sertraline",
		Dosage:        c.NewOptional("50mg", true),
		ReminderTimes: times,
		IsActive:      true,
	}
}

// fireSlot simulates the timer callback for an armed slot.
func (s *testSuite) fireSlot(key slotKey) {
	s.scheduler.mu.Lock()
	sl := s.scheduler.slots[key]
	s.scheduler.mu.Unlock()
	s.Require().NotNil(sl)
	s.scheduler.fire(key, sl)
}

func (s *testSuite) TestSetRemindersArmsOneSlotPerTimeEntry() {
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00", "21:00")})

	slots := s.scheduler.armedSlots()
	assert := s.Require()
	assert.Len(slots, 2)
	assert.Equal(
		time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC),
		slots[slotKey{medicationID: "med-1", timeIndex: 0}],
	)
	assert.Equal(
		time.Date(2023, 5, 15, 21, 0, 0, 0, time.UTC),
		slots[slotKey{medicationID: "med-1", timeIndex: 1}],
	)
}

func (s *testSuite) TestSetRemindersIsIdempotent() {
	ms := []medication.Medication{s.medication("med-1", "09:00", "21:00")}
	s.scheduler.SetReminders(ms)
	s.scheduler.SetReminders(ms)

	s.Require().Len(s.scheduler.armedSlots(), 2)
}

func (s *testSuite) TestInactiveAndUnparsableAreSkipped() {
	inactive := s.medication("med-1", "09:00")
	inactive.IsActive = false

	s.scheduler.SetReminders([]medication.Medication{
		inactive,
		s.medication("med-2"),
		s.medication("med-3", "oops", "10:30"),
	})

	slots := s.scheduler.armedSlots()
	assert := s.Require()
	assert.Len(slots, 1)
	assert.Contains(slots, slotKey{medicationID: "med-3", timeIndex: 1})
}

func (s *testSuite) TestFireDeliversAndRearmsRecurring() {
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00")})
	key := slotKey{medicationID: "med-1", timeIndex: 0}

	s.clock.Set(time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC))
	s.fireSlot(key)

	assert := s.Require()
	sent := s.notifier.Sent()
	assert.Len(sent, 1)
	assert.Equal(notification.REMINDER_TITLE, sent[0].Title)
	assert.Equal("Time to take your Sertraline (50mg) at 9:00 AM", sent[0].Body)
	assert.Equal(
		[]notification.Action{
			notification.ActionTaken,
			notification.ActionSnooze,
			notification.ActionDismiss,
		},
		sent[0].Actions,
	)

	slots := s.scheduler.armedSlots()
	assert.Equal(time.Date(2023, 5, 16, 9, 0, 0, 0, time.UTC), slots[key])
}

func (s *testSuite) TestFireWithoutPermissionIsSilent() {
	s.permissions.Permissions[USER_ID] = notification.PermissionDenied
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00")})
	key := slotKey{medicationID: "med-1", timeIndex: 0}

	s.clock.Set(time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC))
	s.fireSlot(key)

	assert := s.Require()
	assert.Empty(s.notifier.Sent())
	// The schedule keeps going even while notifications are off.
	assert.Len(s.scheduler.armedSlots(), 1)
}

func (s *testSuite) TestOneShotExhaustsAfterFiring() {
	m := s.medication("med-1", "09:00")
	m.ReminderDate = c.NewOptional(time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), true)
	s.scheduler.SetReminders([]medication.Medication{m})
	key := slotKey{medicationID: "med-1", timeIndex: 0}

	s.clock.Set(time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC))
	s.fireSlot(key)

	assert := s.Require()
	assert.Len(s.notifier.Sent(), 1)
	assert.Empty(s.scheduler.armedSlots())
}

func (s *testSuite) TestCancelledSlotNeverDelivers() {
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00")})
	key := slotKey{medicationID: "med-1", timeIndex: 0}
	s.scheduler.mu.Lock()
	sl := s.scheduler.slots[key]
	s.scheduler.mu.Unlock()

	s.scheduler.Cancel("med-1")
	// Simulate a timer callback that was already in flight.
	s.scheduler.fire(key, sl)

	assert := s.Require()
	assert.Empty(s.notifier.Sent())
	assert.Empty(s.scheduler.armedSlots())
}

func (s *testSuite) TestSnoozeCollapsesSlotsIntoOne() {
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00", "21:00")})

	s.scheduler.Snooze("med-1")

	slots := s.scheduler.armedSlots()
	assert := s.Require()
	assert.Len(slots, 1)
	assert.Equal(
		StartOfDay.Add(SNOOZE_DURATION),
		slots[slotKey{medicationID: "med-1", timeIndex: 0}],
	)
}

func (s *testSuite) TestSnoozedFireRestoresRegularSchedule() {
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00", "21:00")})
	s.scheduler.Snooze("med-1")

	s.clock.Set(StartOfDay.Add(SNOOZE_DURATION))
	s.fireSlot(slotKey{medicationID: "med-1", timeIndex: 0})

	assert := s.Require()
	assert.Len(s.notifier.Sent(), 1)
	slots := s.scheduler.armedSlots()
	assert.Len(slots, 2)
	assert.Equal(
		time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC),
		slots[slotKey{medicationID: "med-1", timeIndex: 0}],
	)
	assert.Equal(
		time.Date(2023, 5, 15, 21, 0, 0, 0, time.UTC),
		slots[slotKey{medicationID: "med-1", timeIndex: 1}],
	)
}

func (s *testSuite) TestSnoozeUnknownMedicationIsNoOp() {
	s.scheduler.Snooze("unknown")
	s.Require().Empty(s.scheduler.armedSlots())
}

func (s *testSuite) TestSweepRearmsLostTimersWithoutDuplicates() {
	s.scheduler.SetReminders([]medication.Medication{s.medication("med-1", "09:00", "21:00")})
	s.scheduler.mu.Lock()
	s.scheduler.cancelAllLocked()
	s.scheduler.mu.Unlock()
	s.Require().Empty(s.scheduler.armedSlots())

	s.scheduler.sweep()
	s.Require().Len(s.scheduler.armedSlots(), 2)

	s.scheduler.sweep()
	s.Require().Len(s.scheduler.armedSlots(), 2)
}

func (s *testSuite) TestCancelAllClearsEverything() {
	s.scheduler.SetReminders([]medication.Medication{
		s.medication("med-1", "09:00"),
		s.medication("med-2", "10:00"),
	})

	s.scheduler.CancelAll()

	s.Require().Empty(s.scheduler.armedSlots())
	// Nothing left for the sweep to resurrect.
	s.scheduler.sweep()
	s.Require().Empty(s.scheduler.armedSlots())
}

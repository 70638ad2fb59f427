package scheduler

import (
	"context"
	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/notification"
	"sync"
	"time"
)

const (
	SNOOZE_DURATION = 10 * time.Minute
	SWEEP_PERIOD    = time.Minute
)

type slotKey struct {
	medicationID medication.ID
	timeIndex    int
}

// slot is one armed timer. The cancelled flag is authoritative: a
// timer callback that lost the race against Stop checks it under the
// scheduler mutex and backs off.
type slot struct {
	timer     *time.Timer
	fireAt    time.Time
	cancelled bool
}

// Scheduler keeps one timer per (medication, reminder time) pair and
// delivers reminder notifications when they fire. It holds the working
// set in memory; SetReminders replaces it wholesale from the store.
type Scheduler struct {
	log         logging.Logger
	notifier    notification.Notifier
	permissions notification.PermissionRepository
	now         func() time.Time
	sweepPeriod time.Duration

	mu      sync.Mutex
	working map[medication.ID]medication.Medication
	slots   map[slotKey]*slot

	done chan struct{}
	wg   sync.WaitGroup
}

func New(
	log logging.Logger,
	notifier notification.Notifier,
	permissions notification.PermissionRepository,
	now func() time.Time,
) *Scheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if permissions == nil {
		panic(e.NewNilArgumentError("permissions"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Scheduler{
		log:         log,
		notifier:    notifier,
		permissions: permissions,
		now:         now,
		sweepPeriod: SWEEP_PERIOD,
		working:     make(map[medication.ID]medication.Medication),
		slots:       make(map[slotKey]*slot),
		done:        make(chan struct{}),
	}
}

// Start launches the periodic reconciliation sweep.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.sweepLoop()
}

func (s *Scheduler) Shutdown() {
	close(s.done)
	s.wg.Wait()
	s.CancelAll()
}

// SetReminders replaces the whole working set.
func (s *Scheduler) SetReminders(ms []medication.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllLocked()
	s.working = make(map[medication.ID]medication.Medication, len(ms))
	for _, m := range ms {
		if !m.HasReminders() {
			continue
		}
		s.working[m.ID] = m
		s.armMedicationLocked(m)
	}
	s.log.Info(
		context.Background(),
		"Reminder working set replaced.",
		logging.Entry("medications", len(s.working)),
		logging.Entry("armedSlots", len(s.slots)),
	)
}

func (s *Scheduler) Cancel(id medication.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelMedicationLocked(id)
	delete(s.working, id)
}

func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAllLocked()
	s.working = make(map[medication.ID]medication.Medication)
}

// Snooze postpones the medication's next fire. All of its pending
// timers collapse into a single one at now + SNOOZE_DURATION; the
// regular schedule resumes after that fire.
func (s *Scheduler) Snooze(id medication.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.working[id]
	if !ok {
		return
	}
	until := s.now().Add(SNOOZE_DURATION)
	m.SnoozeUntil = c.NewOptional(until, true)
	s.working[id] = m

	s.cancelMedicationLocked(id)
	s.armMedicationLocked(m)
	s.log.Info(
		context.Background(),
		"Medication reminder snoozed.",
		logging.Entry("medicationId", id),
		logging.Entry("until", until),
	)
}

func (s *Scheduler) sweepLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.sweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

// sweep re-arms any working-set medication that lost its timers, e.g.
// after a missed re-arm. Armed slots are never duplicated.
func (s *Scheduler) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.working {
		if s.hasSlotLocked(id) {
			continue
		}
		s.armMedicationLocked(m)
	}
}

func (s *Scheduler) hasSlotLocked(id medication.ID) bool {
	for key := range s.slots {
		if key.medicationID == id {
			return true
		}
	}
	return false
}

func (s *Scheduler) cancelMedicationLocked(id medication.ID) {
	for key, sl := range s.slots {
		if key.medicationID != id {
			continue
		}
		sl.cancelled = true
		sl.timer.Stop()
		delete(s.slots, key)
	}
}

func (s *Scheduler) cancelAllLocked() {
	for key, sl := range s.slots {
		sl.cancelled = true
		sl.timer.Stop()
		delete(s.slots, key)
	}
}

func (s *Scheduler) armMedicationLocked(m medication.Medication) {
	if !m.HasReminders() {
		return
	}
	now := s.now()
	if m.SnoozeUntil.IsPresent && m.SnoozeUntil.Value.After(now) {
		// A snoozed medication fires exactly once at the snooze
		// instant, whatever its time entries say.
		s.armSlotLocked(slotKey{medicationID: m.ID, timeIndex: 0}, m.SnoozeUntil.Value)
		return
	}
	for i, reminderTime := range m.ReminderTimes {
		next, err := medication.NextReminderAt(now, reminderTime, m.ReminderDate, c.Optional[time.Time]{})
		if err != nil {
			s.log.Warning(
				context.Background(),
				"Skipping unparsable reminder time.",
				logging.Entry("medicationId", m.ID),
				logging.Entry("reminderTime", reminderTime),
			)
			continue
		}
		if !next.IsPresent {
			continue
		}
		s.armSlotLocked(slotKey{medicationID: m.ID, timeIndex: i}, next.Value)
	}
}

func (s *Scheduler) armSlotLocked(key slotKey, fireAt time.Time) {
	if _, ok := s.slots[key]; ok {
		return
	}
	sl := &slot{fireAt: fireAt}
	delay := fireAt.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	sl.timer = time.AfterFunc(delay, func() { s.fire(key, sl) })
	s.slots[key] = sl
}

// fire runs on the timer goroutine. Slot identity is re-checked under
// the mutex so a cancelled or replaced slot never delivers.
func (s *Scheduler) fire(key slotKey, sl *slot) {
	s.mu.Lock()
	current, ok := s.slots[key]
	if !ok || current != sl || sl.cancelled {
		s.mu.Unlock()
		return
	}
	delete(s.slots, key)

	m, ok := s.working[key.medicationID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if m.SnoozeUntil.IsPresent {
		m.SnoozeUntil = c.Optional[time.Time]{}
		s.working[m.ID] = m
	}
	reminderTime := ""
	if key.timeIndex < len(m.ReminderTimes) {
		reminderTime = m.ReminderTimes[key.timeIndex]
	}
	// Recurring entries re-arm for the next occurrence; exhausted
	// one-shots simply drop out.
	s.armMedicationLocked(m)
	s.mu.Unlock()

	s.deliver(m, reminderTime)
}

func (s *Scheduler) deliver(m medication.Medication, reminderTime string) {
	ctx := context.Background()

	permission, err := s.permissions.Get(ctx, m.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("medicationId", m.ID))
		return
	}
	if permission != notification.PermissionGranted {
		s.log.Info(
			ctx,
			"Notification permission not granted, reminder skipped.",
			logging.Entry("medicationId", m.ID),
			logging.Entry("userId", m.UserID),
			logging.Entry("permission", permission),
		)
		return
	}

	body := "Time to take your " + m.Name
	if m.Dosage.IsPresent && m.Dosage.Value != "" {
		body += " (" + m.Dosage.Value + ")"
	}
	if formatted, err := medication.FormatTimeOfDay(reminderTime); err == nil {
		body += " at " + formatted
	}

	err = s.notifier.Notify(ctx, notification.Notification{
		UserID:       m.UserID,
		MedicationID: m.ID,
		Title:        notification.REMINDER_TITLE,
		Body:         body,
		Actions: []notification.Action{
			notification.ActionTaken,
			notification.ActionSnooze,
			notification.ActionDismiss,
		},
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("medicationId", m.ID))
		return
	}
	s.log.Info(
		ctx,
		"Medication reminder delivered.",
		logging.Entry("medicationId", m.ID),
		logging.Entry("userId", m.UserID),
		logging.Entry("reminderTime", reminderTime),
	)
}

// armedSlots returns a snapshot of the armed timers, keyed for
// inspection in tests and debug logs.
func (s *Scheduler) armedSlots() map[slotKey]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[slotKey]time.Time, len(s.slots))
	for key, sl := range s.slots {
		snapshot[key] = sl.fireAt
	}
	return snapshot
}

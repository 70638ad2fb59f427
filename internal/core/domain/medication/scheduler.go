package medication

// Scheduler keeps in-memory reminder timers in sync with the stored
// medications. All operations are safe for concurrent use.
type Scheduler interface {
	// SetReminders replaces the whole working set: every previously
	// armed timer is cancelled and timers are re-armed from the given
	// medications.
	SetReminders(ms []Medication)
	Cancel(id ID)
	CancelAll()
	// Snooze postpones the medication's next fire by the snooze
	// interval, collapsing its pending timers into a single one.
	Snooze(id ID)
}

package dailylog

import (
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/user"
	"time"
)

type ID string

// DailyLog is one calendar day's check-in. At most one log exists per
// user per date. Rating fields use a 1 to 10 scale.
type DailyLog struct {
	ID     ID
	UserID user.ID
	Date   time.Time

	MoodRating        c.Optional[int]
	EmotionCheckboxes []string
	EmotionIntensity  c.Optional[int]
	PositiveMoments   c.Optional[string]

	SleepQuality      c.Optional[int]
	SleepDuration     c.Optional[string]
	SleepDifficulties []string
	BedTime           c.Optional[string]
	WakeUpTime        c.Optional[string]

	EnergyLevel        c.Optional[int]
	EnergyFluctuations c.Optional[string]
	FunctionalImpact   c.Optional[string]

	AppetiteRating     c.Optional[int]
	AppetiteComparison c.Optional[string]
	MealRegularity     []string

	MedicationTaken    c.Optional[bool]
	SelfCareActivities []string
	SocialInteractions []string
	Stressors          []string
	CopingStrategies   []string

	GratefulFor c.Optional[string]
	Notes       c.Optional[string]

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day truncates an instant to its calendar date in the given location.
func Day(at time.Time, loc *time.Location) time.Time {
	at = at.In(loc)
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, loc)
}

// AppendNote adds a line to the log's free-form notes.
func (l *DailyLog) AppendNote(note string) {
	if !l.Notes.IsPresent || l.Notes.Value == "" {
		l.Notes = c.NewOptional(note, true)
		return
	}
	l.Notes = c.NewOptional(l.Notes.Value+"\n"+note, true)
}

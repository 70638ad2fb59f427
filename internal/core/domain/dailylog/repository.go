package dailylog

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/user"
	"time"
)

// UpsertInput carries a full day's check-in. Fields left absent on an
// existing log are overwritten with absent values; a daily check-in is
// always submitted whole.
//
// MedicationTakenOnly marks the reduced upsert issued when a
// medication is confirmed taken: only MedicationTaken and Notes are
// touched, everything else on an existing log is preserved.
type UpsertInput struct {
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

	MedicationTakenOnly bool

	At time.Time
}

type ReadRangeOptions struct {
	UserID user.ID
	From   time.Time
	To     time.Time
}

type Repository interface {
	Upsert(ctx context.Context, input UpsertInput) (DailyLog, error)
	GetByDate(ctx context.Context, userID user.ID, date time.Time) (DailyLog, error)
	// ReadRange returns the user's logs with From <= Date <= To,
	// ordered by date descending.
	ReadRange(ctx context.Context, options ReadRangeOptions) ([]DailyLog, error)
	Count(ctx context.Context, userID user.ID) (int, error)
}

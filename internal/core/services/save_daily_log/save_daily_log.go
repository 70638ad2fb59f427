package savedailylog

import (
	"context"
	"errors"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	"time"
)

type Input struct {
	User user.User

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
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	DailyLog dailylog.DailyLog
}

type service struct {
	log                logging.Logger
	dailyLogRepository dailylog.Repository
	now                func() time.Time
}

func New(
	log logging.Logger,
	dailyLogRepository dailylog.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if dailyLogRepository == nil {
		panic(e.NewNilArgumentError("dailyLogRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, dailyLogRepository: dailyLogRepository, now: now}
}

func validRating(rating c.Optional[int]) bool {
	return !rating.IsPresent || (rating.Value >= 1 && rating.Value <= 10)
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	for _, rating := range []c.Optional[int]{
		input.MoodRating,
		input.EmotionIntensity,
		input.SleepQuality,
		input.EnergyLevel,
		input.AppetiteRating,
	} {
		if !validRating(rating) {
			return result, dailylog.ErrInvalidRating
		}
	}

	now := s.now()
	l, err := s.dailyLogRepository.Upsert(ctx, dailylog.UpsertInput{
		UserID:             input.User.ID,
		Date:               dailylog.Day(now, now.Location()),
		MoodRating:         input.MoodRating,
		EmotionCheckboxes:  input.EmotionCheckboxes,
		EmotionIntensity:   input.EmotionIntensity,
		PositiveMoments:    input.PositiveMoments,
		SleepQuality:       input.SleepQuality,
		SleepDuration:      input.SleepDuration,
		SleepDifficulties:  input.SleepDifficulties,
		BedTime:            input.BedTime,
		WakeUpTime:         input.WakeUpTime,
		EnergyLevel:        input.EnergyLevel,
		EnergyFluctuations: input.EnergyFluctuations,
		FunctionalImpact:   input.FunctionalImpact,
		AppetiteRating:     input.AppetiteRating,
		AppetiteComparison: input.AppetiteComparison,
		MealRegularity:     input.MealRegularity,
		MedicationTaken:    input.MedicationTaken,
		SelfCareActivities: input.SelfCareActivities,
		SocialInteractions: input.SocialInteractions,
		Stressors:          input.Stressors,
		CopingStrategies:   input.CopingStrategies,
		GratefulFor:        input.GratefulFor,
		Notes:              input.Notes,
		At:                 now,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Daily log saved.",
		logging.Entry("userId", input.User.ID),
		logging.Entry("date", l.Date),
	)
	return Result{DailyLog: l}, nil
}

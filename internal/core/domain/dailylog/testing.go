package dailylog

import (
	"context"
	"fmt"
	"mindlog/internal/core/domain/user"
	"sync"
	"time"
)

type fakeKey struct {
	userID user.ID
	date   time.Time
}

type FakeRepository struct {
	lock   sync.Mutex
	nextID int
	Logs   map[fakeKey]DailyLog

	UpsertError error
	GetError    error
	ReadError   error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Logs: make(map[fakeKey]DailyLog)}
}

func (r *FakeRepository) Upsert(ctx context.Context, input UpsertInput) (DailyLog, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.UpsertError != nil {
		return DailyLog{}, r.UpsertError
	}
	key := fakeKey{userID: input.UserID, date: input.Date}
	l, exists := r.Logs[key]
	if !exists {
		r.nextID++
		l = DailyLog{
			ID:        ID(fmt.Sprintf("log-%d", r.nextID)),
			UserID:    input.UserID,
			Date:      input.Date,
			CreatedAt: input.At,
		}
	}
	if input.MedicationTakenOnly {
		l.MedicationTaken = input.MedicationTaken
		l.Notes = input.Notes
	} else {
		l.MoodRating = input.MoodRating
		l.EmotionCheckboxes = input.EmotionCheckboxes
		l.EmotionIntensity = input.EmotionIntensity
		l.PositiveMoments = input.PositiveMoments
		l.SleepQuality = input.SleepQuality
		l.SleepDuration = input.SleepDuration
		l.SleepDifficulties = input.SleepDifficulties
		l.BedTime = input.BedTime
		l.WakeUpTime = input.WakeUpTime
		l.EnergyLevel = input.EnergyLevel
		l.EnergyFluctuations = input.EnergyFluctuations
		l.FunctionalImpact = input.FunctionalImpact
		l.AppetiteRating = input.AppetiteRating
		l.AppetiteComparison = input.AppetiteComparison
		l.MealRegularity = input.MealRegularity
		l.MedicationTaken = input.MedicationTaken
		l.SelfCareActivities = input.SelfCareActivities
		l.SocialInteractions = input.SocialInteractions
		l.Stressors = input.Stressors
		l.CopingStrategies = input.CopingStrategies
		l.GratefulFor = input.GratefulFor
		l.Notes = input.Notes
	}
	l.UpdatedAt = input.At
	r.Logs[key] = l
	return l, nil
}

func (r *FakeRepository) GetByDate(ctx context.Context, userID user.ID, date time.Time) (DailyLog, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetError != nil {
		return DailyLog{}, r.GetError
	}
	l, ok := r.Logs[fakeKey{userID: userID, date: date}]
	if !ok {
		return DailyLog{}, ErrDailyLogDoesNotExist
	}
	return l, nil
}

func (r *FakeRepository) ReadRange(ctx context.Context, options ReadRangeOptions) ([]DailyLog, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	logs := make([]DailyLog, 0)
	for key, l := range r.Logs {
		if key.userID != options.UserID {
			continue
		}
		if key.date.Before(options.From) || key.date.After(options.To) {
			continue
		}
		logs = append(logs, l)
	}
	for i := 0; i < len(logs); i++ {
		for j := i + 1; j < len(logs); j++ {
			if logs[j].Date.After(logs[i].Date) {
				logs[i], logs[j] = logs[j], logs[i]
			}
		}
	}
	return logs, nil
}

func (r *FakeRepository) Count(ctx context.Context, userID user.ID) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for key := range r.Logs {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

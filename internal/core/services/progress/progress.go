package progress

import (
	"context"
	"math"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	"time"
)

const (
	DAYS            = 7
	STREAK_MAX_DAYS = 30
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Streak              int
	AverageMood         float64
	AverageSleep        float64
	AverageEnergy       float64
	MedicationAdherence float64
	WeeklyCheckIns      int
	GoodDays            int
	Feedback            string
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

// feedback singles out the weakest metric of the week. Ratings are
// normalized to a 0-100 scale before comparison so the adherence
// percentage can compete with 1-10 ratings.
func feedback(mood, sleep, energy, adherence float64) string {
	lowestKey := ""
	lowestValue := 0.0
	lowestNormalized := 100.0
	for _, metric := range []struct {
		key        string
		value      float64
		normalized float64
	}{
		{key: "mood", value: mood, normalized: mood * 10},
		{key: "sleep", value: sleep, normalized: sleep * 10},
		{key: "energy", value: energy, normalized: energy * 10},
		{key: "medication", value: adherence, normalized: adherence},
	} {
		if metric.normalized < lowestNormalized {
			lowestKey = metric.key
			lowestValue = metric.value
			lowestNormalized = metric.normalized
		}
	}

	switch lowestKey {
	case "medication":
		if lowestValue == 0 {
			return "Focus Area: Please prioritize taking your medication regularly. Consistent medication can significantly improve your mental health journey."
		}
		if lowestValue < 50 {
			return "Focus Area: Try setting daily reminders for your medication. Consistency is key to feeling better."
		}
	case "mood":
		if lowestValue < 3 {
			return "Focus Area: Your mood scores show you're going through a tough time. Consider reaching out to a trusted person or counselor for support."
		}
		if lowestValue < 5 {
			return "Focus Area: Focus on small mood-boosting activities like listening to music, spending time outside, or connecting with friends."
		}
	case "sleep":
		if lowestValue < 2 {
			return "Focus Area: Poor sleep can really impact your mental health. Try establishing a consistent bedtime routine and limiting screen time before bed."
		}
		if lowestValue < 3 {
			return "Focus Area: Improving your sleep quality could help boost your mood and energy. Consider relaxation techniques before bed."
		}
	case "energy":
		if lowestValue < 3 {
			return "Focus Area: Low energy can be challenging. Try gentle exercise, staying hydrated, and eating regular nutritious meals to boost your energy."
		}
		if lowestValue < 5 {
			return "Focus Area: Consider adding light physical activity or brief walks to help increase your energy levels throughout the day."
		}
	}
	return "Great job on your mental health journey! Keep up the consistent self-care and check-ins."
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	today := dailylog.Day(now, now.Location())

	logs, err := s.dailyLogRepository.ReadRange(ctx, dailylog.ReadRangeOptions{
		UserID: input.User.ID,
		From:   today.AddDate(0, 0, -DAYS),
		To:     today,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	averageMood := dailylog.AverageMood(logs)
	averageSleep := dailylog.AverageSleepQuality(logs)
	averageEnergy := dailylog.AverageEnergy(logs)
	adherence := dailylog.MedicationAdherence(logs)

	return Result{
		Streak:              dailylog.Streak(logs, now, true, STREAK_MAX_DAYS),
		AverageMood:         dailylog.Round1(averageMood),
		AverageSleep:        dailylog.Round1(averageSleep),
		AverageEnergy:       dailylog.Round1(averageEnergy),
		MedicationAdherence: math.Round(adherence),
		WeeklyCheckIns:      len(logs),
		GoodDays:            dailylog.GoodDays(logs),
		Feedback:            feedback(averageMood, averageSleep, averageEnergy, adherence),
	}, nil
}

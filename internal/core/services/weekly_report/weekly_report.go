package weeklyreport

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

	"github.com/golang-module/carbon/v2"
)

const TOP_EMOTIONS = 3

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

// WeekStats are one week's rounded averages. Medication is an
// adherence percentage, the rest use the 1 to 10 rating scale.
type WeekStats struct {
	Mood       float64
	Sleep      float64
	Energy     float64
	Medication float64
}

type Summary struct {
	CheckInsCompleted int
	GoodDays          int
	ChallengingDays   int
	TotalDays         int
}

type Result struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Summary      Summary
	CurrentWeek  WeekStats
	PreviousWeek WeekStats
	Trends       WeekStats
	TopEmotions  []string
	Insights     []string
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

func weekStats(logs []dailylog.DailyLog) WeekStats {
	return WeekStats{
		Mood:       dailylog.Round1(dailylog.AverageMood(logs)),
		Sleep:      dailylog.Round1(dailylog.AverageSleepQuality(logs)),
		Energy:     dailylog.Round1(dailylog.AverageEnergy(logs)),
		Medication: math.Round(dailylog.MedicationAdherence(logs)),
	}
}

func insights(current WeekStats, trends WeekStats, checkIns int) []string {
	out := make([]string, 0, 4)

	if trends.Mood > 0.5 {
		out = append(out, "Your mood has improved compared to last week! Keep up the great work.")
	} else if trends.Mood < -0.5 {
		out = append(out, "Your mood was lower this week. Remember, it's okay to have tough weeks - focus on small self-care activities.")
	}

	if trends.Sleep > 0.5 {
		out = append(out, "Your sleep quality has improved! Good sleep is crucial for mental health.")
	} else if current.Sleep < 3 {
		out = append(out, "Consider establishing a consistent bedtime routine to improve your sleep quality.")
	}

	if trends.Medication > 10 {
		out = append(out, "Great improvement in medication adherence! Consistency is key.")
	} else if current.Medication < 70 {
		out = append(out, "Try setting daily reminders to help maintain consistent medication routine.")
	}

	if checkIns >= 5 {
		out = append(out, "Excellent job staying consistent with your daily check-ins!")
	} else if checkIns < 3 {
		out = append(out, "Try to complete more daily check-ins next week - they help track your progress.")
	}

	return out
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	weekStart := carbon.Time2Carbon(now).SetWeekStartsAt(carbon.Sunday).StartOfWeek().Carbon2Time()
	weekEnd := weekStart.AddDate(0, 0, 6)

	currentWeekLogs, err := s.dailyLogRepository.ReadRange(ctx, dailylog.ReadRangeOptions{
		UserID: input.User.ID,
		From:   weekStart,
		To:     weekEnd,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	previousWeekLogs, err := s.dailyLogRepository.ReadRange(ctx, dailylog.ReadRangeOptions{
		UserID: input.User.ID,
		From:   weekStart.AddDate(0, 0, -7),
		To:     weekEnd.AddDate(0, 0, -7),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	current := weekStats(currentWeekLogs)
	previous := weekStats(previousWeekLogs)
	trends := WeekStats{
		Mood:       current.Mood - previous.Mood,
		Sleep:      current.Sleep - previous.Sleep,
		Energy:     current.Energy - previous.Energy,
		Medication: current.Medication - previous.Medication,
	}

	return Result{
		PeriodStart: weekStart,
		PeriodEnd:   weekEnd,
		Summary: Summary{
			CheckInsCompleted: len(currentWeekLogs),
			GoodDays:          dailylog.GoodDays(currentWeekLogs),
			ChallengingDays:   dailylog.ChallengingDays(currentWeekLogs),
			TotalDays:         7,
		},
		CurrentWeek:  current,
		PreviousWeek: previous,
		Trends:       trends,
		TopEmotions:  dailylog.TopEmotions(currentWeekLogs, TOP_EMOTIONS),
		Insights:     insights(current, trends, len(currentWeekLogs)),
	}, nil
}

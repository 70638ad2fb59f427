package dashboard

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

const DAYS = 30

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Stats struct {
	Streak      int
	AverageMood float64
	TotalLogs   int
}

type Result struct {
	TodayLog c.Optional[dailylog.DailyLog]
	Stats    Stats
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

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	today := dailylog.Day(now, now.Location())

	logs, err := s.dailyLogRepository.ReadRange(ctx, dailylog.ReadRangeOptions{
		UserID: input.User.ID,
		From:   today.AddDate(0, 0, -(DAYS - 1)),
		To:     today,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	todayLog := c.Optional[dailylog.DailyLog]{}
	l, err := s.dailyLogRepository.GetByDate(ctx, input.User.ID, today)
	if err == nil {
		todayLog = c.NewOptional(l, true)
	} else if !errors.Is(err, dailylog.ErrDailyLogDoesNotExist) {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	return Result{
		TodayLog: todayLog,
		Stats: Stats{
			Streak:      dailylog.Streak(logs, now, false, DAYS),
			AverageMood: dailylog.Round1(dailylog.AverageMood(logs)),
			TotalLogs:   len(logs),
		},
	}, nil
}

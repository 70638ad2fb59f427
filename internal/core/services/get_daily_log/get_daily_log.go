package getdailylog

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	"time"
)

type Input struct {
	User user.User
	// Date defaults to today when absent.
	Date c.Optional[time.Time]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	DailyLog dailylog.DailyLog
}

type service struct {
	dailyLogRepository dailylog.Repository
	now                func() time.Time
}

func New(
	dailyLogRepository dailylog.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if dailyLogRepository == nil {
		panic(e.NewNilArgumentError("dailyLogRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{dailyLogRepository: dailyLogRepository, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	date := dailylog.Day(s.now(), time.UTC)
	if input.Date.IsPresent {
		date = dailylog.Day(input.Date.Value, input.Date.Value.Location())
	}
	l, err := s.dailyLogRepository.GetByDate(ctx, input.User.ID, date)
	if err != nil {
		return result, err
	}
	return Result{DailyLog: l}, nil
}

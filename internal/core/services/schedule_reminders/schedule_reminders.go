package schedulereminders

import (
	"context"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/services"
)

type Input struct{}

type Result struct {
	ScheduledCount int
}

// service reloads every active medication into the scheduler. It runs
// at startup and after every medication mutation, so in-memory timers
// never drift from the stored state.
type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
	scheduler            medication.Scheduler
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
	scheduler medication.Scheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicationRepository == nil {
		panic(e.NewNilArgumentError("medicationRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &service{
		log:                  log,
		medicationRepository: medicationRepository,
		scheduler:            scheduler,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	ms, err := s.medicationRepository.Read(ctx, medication.ReadOptions{ActiveOnly: true})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	s.scheduler.SetReminders(ms)
	s.log.Info(ctx, "Medication reminders scheduled.", logging.Entry("count", len(ms)))
	return Result{ScheduledCount: len(ms)}, nil
}

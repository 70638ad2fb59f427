package createmedication

import (
	"context"
	"errors"
	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	schedulereminders "mindlog/internal/core/services/schedule_reminders"
	"time"
)

type Input struct {
	User          user.User
	Name          string
	Dosage        c.Optional[string]
	Frequency     c.Optional[string]
	ReminderTimes []string
	ReminderDate  c.Optional[time.Time]
	IsActive      bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Medication medication.Medication
}

type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
	resync               services.Service[schedulereminders.Input, schedulereminders.Result]
	now                  func() time.Time
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
	resync services.Service[schedulereminders.Input, schedulereminders.Result],
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicationRepository == nil {
		panic(e.NewNilArgumentError("medicationRepository"))
	}
	if resync == nil {
		panic(e.NewNilArgumentError("resync"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		medicationRepository: medicationRepository,
		resync:               resync,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Name == "" {
		return result, medication.ErrMedicationNameNotSet
	}
	for _, reminderTime := range input.ReminderTimes {
		if _, err := medication.ParseTimeOfDay(reminderTime); err != nil {
			return result, err
		}
	}

	m, err := s.medicationRepository.Create(ctx, medication.CreateInput{
		UserID:        input.User.ID,
		Name:          input.Name,
		Dosage:        input.Dosage,
		Frequency:     input.Frequency,
		ReminderTimes: input.ReminderTimes,
		ReminderDate:  input.ReminderDate,
		IsActive:      input.IsActive,
		CreatedAt:     s.now(),
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
		"Medication created.",
		logging.Entry("medicationId", m.ID),
		logging.Entry("userId", m.UserID),
		logging.Entry("reminderTimes", m.ReminderTimes),
	)

	// The mutation already succeeded; a failed resync is logged inside
	// the service and the periodic sweep catches up.
	s.resync.Run(ctx, schedulereminders.Input{})
	return Result{Medication: m}, nil
}

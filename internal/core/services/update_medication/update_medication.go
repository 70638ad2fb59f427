package updatemedication

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
	MedicationID  medication.ID
	Name          c.Optional[string]
	Dosage        c.Optional[c.Optional[string]]
	Frequency     c.Optional[c.Optional[string]]
	ReminderTimes c.Optional[[]string]
	ReminderDate  c.Optional[c.Optional[time.Time]]
	IsActive      c.Optional[bool]
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
	if input.Name.IsPresent && input.Name.Value == "" {
		return result, medication.ErrMedicationNameNotSet
	}
	if input.ReminderTimes.IsPresent {
		for _, reminderTime := range input.ReminderTimes.Value {
			if _, err := medication.ParseTimeOfDay(reminderTime); err != nil {
				return result, err
			}
		}
	}

	m, err := s.medicationRepository.Update(ctx, medication.UpdateInput{
		ID:            input.MedicationID,
		UserID:        input.User.ID,
		Name:          input.Name,
		Dosage:        input.Dosage,
		Frequency:     input.Frequency,
		ReminderTimes: input.ReminderTimes,
		ReminderDate:  input.ReminderDate,
		IsActive:      input.IsActive,
		UpdatedAt:     s.now(),
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, medication.ErrMedicationDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("medicationId", input.MedicationID),
			logging.Entry("userId", input.User.ID),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Medication updated.",
		logging.Entry("medicationId", m.ID),
		logging.Entry("userId", m.UserID),
	)
	s.resync.Run(ctx, schedulereminders.Input{})
	return Result{Medication: m}, nil
}

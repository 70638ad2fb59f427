package deletemedication

import (
	"context"
	"errors"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	schedulereminders "mindlog/internal/core/services/schedule_reminders"
)

type Input struct {
	User         user.User
	MedicationID medication.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
	resync               services.Service[schedulereminders.Input, schedulereminders.Result]
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
	resync services.Service[schedulereminders.Input, schedulereminders.Result],
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
	return &service{
		log:                  log,
		medicationRepository: medicationRepository,
		resync:               resync,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.medicationRepository.Delete(ctx, input.MedicationID, input.User.ID)
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
		"Medication deleted.",
		logging.Entry("medicationId", input.MedicationID),
		logging.Entry("userId", input.User.ID),
	)
	s.resync.Run(ctx, schedulereminders.Input{})
	return result, nil
}

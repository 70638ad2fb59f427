package markmedicationtaken

import (
	"context"
	"errors"
	"fmt"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	"time"
)

type Input struct {
	User         user.User
	MedicationID medication.ID
	TakenAt      c.Optional[time.Time]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Intake  medication.Intake
	TakenAt time.Time
}

type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
	intakeRepository     medication.IntakeRepository
	dailyLogRepository   dailylog.Repository
	now                  func() time.Time
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
	intakeRepository medication.IntakeRepository,
	dailyLogRepository dailylog.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicationRepository == nil {
		panic(e.NewNilArgumentError("medicationRepository"))
	}
	if intakeRepository == nil {
		panic(e.NewNilArgumentError("intakeRepository"))
	}
	if dailyLogRepository == nil {
		panic(e.NewNilArgumentError("dailyLogRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		medicationRepository: medicationRepository,
		intakeRepository:     intakeRepository,
		dailyLogRepository:   dailyLogRepository,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	m, err := s.medicationRepository.GetByID(ctx, input.MedicationID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, medication.ErrMedicationDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("medicationId", input.MedicationID))
		return result, err
	}
	if m.UserID != input.User.ID {
		return result, medication.ErrMedicationDoesNotExist
	}

	takenAt := s.now()
	if input.TakenAt.IsPresent {
		takenAt = input.TakenAt.Value
	}

	intake, err := s.intakeRepository.Create(ctx, medication.CreateIntakeInput{
		MedicationID: m.ID,
		UserID:       input.User.ID,
		TakenAt:      takenAt,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("medicationId", m.ID))
		return result, err
	}

	today := dailylog.Day(s.now(), takenAt.Location())
	notes := c.Optional[string]{}
	existing, err := s.dailyLogRepository.GetByDate(ctx, input.User.ID, today)
	if err == nil {
		notes = existing.Notes
	} else if !errors.Is(err, dailylog.ErrDailyLogDoesNotExist) {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	note := fmt.Sprintf("Medication %q taken at %s", m.Name, takenAt.Format("3:04:05 PM"))
	if notes.IsPresent && notes.Value != "" {
		notes = c.NewOptional(notes.Value+"\n"+note, true)
	} else {
		notes = c.NewOptional(note, true)
	}

	_, err = s.dailyLogRepository.Upsert(ctx, dailylog.UpsertInput{
		UserID:              input.User.ID,
		Date:                today,
		MedicationTaken:     c.NewOptional(true, true),
		Notes:               notes,
		MedicationTakenOnly: true,
		At:                  s.now(),
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
		"Medication marked as taken.",
		logging.Entry("medicationId", m.ID),
		logging.Entry("userId", input.User.ID),
		logging.Entry("takenAt", takenAt),
	)
	return Result{Intake: intake, TakenAt: takenAt}, nil
}

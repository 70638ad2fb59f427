package listusermedications

import (
	"context"
	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Medications []medication.Medication
}

type service struct {
	log                  logging.Logger
	medicationRepository medication.Repository
}

func New(
	log logging.Logger,
	medicationRepository medication.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicationRepository == nil {
		panic(e.NewNilArgumentError("medicationRepository"))
	}
	return &service{log: log, medicationRepository: medicationRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	ms, err := s.medicationRepository.Read(ctx, medication.ReadOptions{
		UserIDEquals: c.NewOptional(input.User.ID, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	return Result{Medications: ms}, nil
}

package getuserbysessiontoken

import (
	"context"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct {
	User user.User
}

type service struct {
	sessionRepository user.SessionRepository
}

func New(sessionRepository user.SessionRepository) services.Service[Input, Result] {
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{sessionRepository: sessionRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.sessionRepository.GetUserByToken(ctx, input.Token)
	if err != nil {
		return result, err
	}
	return Result{User: u}, nil
}

package listchatsessions

import (
	"context"
	"mindlog/internal/core/domain/chat"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
)

// MESSAGES_PER_SESSION bounds the per-session message preview.
const MESSAGES_PER_SESSION = 20

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Sessions []chat.SessionWithMessages
}

type service struct {
	log               logging.Logger
	sessionRepository chat.SessionRepository
}

func New(
	log logging.Logger,
	sessionRepository chat.SessionRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{log: log, sessionRepository: sessionRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	sessions, err := s.sessionRepository.ReadWithRecentMessages(ctx, input.User.ID, MESSAGES_PER_SESSION)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	return Result{Sessions: sessions}, nil
}

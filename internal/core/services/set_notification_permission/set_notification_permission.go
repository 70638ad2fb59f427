package setnotificationpermission

import (
	"context"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
)

type Input struct {
	User       user.User
	Permission notification.Permission
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Permission notification.Permission
}

type service struct {
	log                  logging.Logger
	permissionRepository notification.PermissionRepository
}

func New(
	log logging.Logger,
	permissionRepository notification.PermissionRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if permissionRepository == nil {
		panic(e.NewNilArgumentError("permissionRepository"))
	}
	return &service{log: log, permissionRepository: permissionRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	switch input.Permission {
	case notification.PermissionGranted, notification.PermissionDenied, notification.PermissionDefault:
	default:
		return result, e.NewInvalidStateError("unknown notification permission")
	}

	if err := s.permissionRepository.Set(ctx, input.User.ID, input.Permission); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Notification permission updated.",
		logging.Entry("userId", input.User.ID),
		logging.Entry("permission", input.Permission),
	)
	return Result{Permission: input.Permission}, nil
}

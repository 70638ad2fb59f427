package sendreminderemail

import (
	"context"
	"errors"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"
)

type Input struct {
	Notification notification.Notification
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	emailSender    notification.EmailSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	emailSender notification.EmailSender,
) *service {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if emailSender == nil {
		panic(e.NewNilArgumentError("emailSender"))
	}
	return &service{log: log, userRepository: userRepository, emailSender: emailSender}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.Notification.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// The account may have been deleted after the reminder was
		// queued, nothing to deliver.
		s.log.Info(
			ctx,
			"User does not exist, reminder email skipped.",
			logging.Entry("userID", input.Notification.UserID),
		)
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.Notification.UserID))
		return result, err
	}

	if err := s.emailSender.SendReminder(ctx, u.Email, input.Notification); err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("userID", u.ID),
			logging.Entry("medicationID", input.Notification.MedicationID),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder email has been sent.",
		logging.Entry("userID", u.ID),
		logging.Entry("medicationID", input.Notification.MedicationID),
	)
	return result, nil
}

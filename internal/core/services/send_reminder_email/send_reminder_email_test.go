package sendreminderemail

import (
	"context"
	"errors"
	"sync"
	"testing"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"

	"github.com/stretchr/testify/suite"
)

type sentEmail struct {
	Email        c.Email
	Notification notification.Notification
}

type fakeEmailSender struct {
	lock      sync.Mutex
	Sent      []sentEmail
	SendError error
}

func (s *fakeEmailSender) SendReminder(
	ctx context.Context,
	email c.Email,
	n notification.Notification,
) error {
	if s.SendError != nil {
		return s.SendError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, sentEmail{Email: email, Notification: n})
	return nil
}

type testSuite struct {
	suite.Suite
	log         *logging.FakeLogger
	users       *user.FakeUserRepository
	emailSender *fakeEmailSender
	service     *service
}

func (s *testSuite) SetupTest() {
	s.log = logging.NewFakeLogger()
	s.users = user.NewFakeUserRepository()
	s.emailSender = &fakeEmailSender{}
	s.service = New(s.log, s.users, s.emailSender)
}

func (s *testSuite) notification(userID user.ID) notification.Notification {
	return notification.Notification{
		UserID:       userID,
		MedicationID: medication.ID("medication-1"),
		Title:        notification.REMINDER_TITLE,
		Body:         "Time to take your Sertraline (50mg) at 9:00 AM",
		Actions: []notification.Action{
			notification.ActionTaken,
			notification.ActionSnooze,
			notification.ActionDismiss,
		},
	}
}

func (s *testSuite) TestSendsEmailToUser() {
	assert := s.Require()
	u, err := s.users.Create(context.Background(), user.CreateUserInput{Email: c.NewEmail("alex@test.com")})
	assert.Nil(err)

	_, err = s.service.Run(context.Background(), Input{Notification: s.notification(u.ID)})

	assert.Nil(err)
	assert.Len(s.emailSender.Sent, 1)
	assert.Equal(c.NewEmail("alex@test.com"), s.emailSender.Sent[0].Email)
	assert.Equal(notification.REMINDER_TITLE, s.emailSender.Sent[0].Notification.Title)
}

func (s *testSuite) TestUnknownUserSkippedWithoutError() {
	assert := s.Require()

	_, err := s.service.Run(context.Background(), Input{Notification: s.notification("user-unknown")})

	assert.Nil(err)
	assert.Empty(s.emailSender.Sent)
}

func (s *testSuite) TestSenderErrorPropagates() {
	assert := s.Require()
	u, err := s.users.Create(context.Background(), user.CreateUserInput{Email: c.NewEmail("alex@test.com")})
	assert.Nil(err)
	s.emailSender.SendError = errors.New("ses unavailable")

	_, err = s.service.Run(context.Background(), Input{Notification: s.notification(u.ID)})

	assert.NotNil(err)
	assert.Empty(s.emailSender.Sent)
}

func TestSendReminderEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

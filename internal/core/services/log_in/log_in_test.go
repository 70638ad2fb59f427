package login

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL    = "teen@test.com"
	PASSWORD = user.RawPassword("secret-password")
	TOKEN    = "test-token"
)

var Now = time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger         *logging.FakeLogger
	users          *user.FakeUserRepository
	sessions       *user.FakeSessionRepository
	passwordHasher *user.FakePasswordHasher
	service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.users = user.NewFakeUserRepository()
	suite.sessions = user.NewFakeSessionRepository(suite.users)
	suite.passwordHasher = user.NewFakePasswordHasher()
	suite.service = New(
		suite.logger,
		suite.users,
		suite.sessions,
		suite.passwordHasher,
		user.NewFakeSessionTokenGenerator(TOKEN),
		func() time.Time { return Now },
	)
}

func TestLogInService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createUser() user.User {
	passwordHash, err := s.passwordHasher.HashPassword(PASSWORD)
	s.Require().Nil(err)
	u, err := s.users.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: passwordHash,
		FirstName:    "Alex",
		Age:          16,
		CreatedAt:    Now,
	})
	s.Require().Nil(err)
	return u
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	result, err := s.service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: PASSWORD},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.SessionToken(TOKEN), result.Token)
	assert.Equal(u.ID, result.User.ID)

	authenticated, err := s.sessions.GetUserByToken(context.Background(), result.Token)
	assert.Nil(err)
	assert.Equal(u.ID, authenticated.ID)
}

func (s *testSuite) TestUnknownEmail() {
	s.createUser()

	_, err := s.service.Run(
		context.Background(),
		Input{Email: c.Email("other@test.com"), Password: PASSWORD},
	)

	s.Require().ErrorIs(err, user.ErrInvalidCredentials)
}

func (s *testSuite) TestWrongPassword() {
	s.createUser()

	_, err := s.service.Run(
		context.Background(),
		Input{Email: c.Email(EMAIL), Password: user.RawPassword("wrong")},
	)

	assert := s.Require()
	assert.ErrorIs(err, user.ErrInvalidCredentials)
	assert.Empty(s.sessions.Sessions)
}

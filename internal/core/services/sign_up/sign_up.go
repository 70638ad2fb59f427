package signup

import (
	"context"
	"errors"
	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"time"
)

type Input struct {
	Email            c.Email
	Password         user.RawPassword
	FirstName        string
	LastName         string
	Age              int
	EmergencyContact c.Optional[string]
}

func (i Input) GetRateLimitKey() string {
	return "sign-up::" + string(i.Email)
}

type Result struct {
	User  user.User
	Token user.SessionToken
}

type service struct {
	log                   logging.Logger
	userRepository        user.UserRepository
	sessionRepository     user.SessionRepository
	passwordHasher        user.PasswordHasher
	sessionTokenGenerator user.SessionTokenGenerator
	now                   func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenGenerator user.SessionTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		userRepository:        userRepository,
		sessionRepository:     sessionRepository,
		passwordHasher:        passwordHasher,
		sessionTokenGenerator: sessionTokenGenerator,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Age < user.MIN_AGE || input.Age > user.MAX_AGE {
		return result, user.ErrInvalidAge
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	u, err := s.userRepository.Create(ctx, user.CreateUserInput{
		Email:            input.Email,
		PasswordHash:     passwordHash,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Age:              input.Age,
		EmergencyContact: input.EmergencyContact,
		CreatedAt:        s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	var emailAlreadyExists *user.EmailAlreadyExistsError
	if errors.As(err, &emailAlreadyExists) {
		s.log.Info(ctx, "Sign up rejected, email already taken.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	sessionToken := s.sessionTokenGenerator.GenerateToken()
	err = s.sessionRepository.Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     sessionToken,
		CreatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", u.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"New user signed up.",
		logging.Entry("userId", u.ID),
		logging.Entry("age", u.Age),
	)
	return Result{User: u, Token: sessionToken}, nil
}

package user

import (
	"errors"
	"fmt"
	c "mindlog/internal/core/domain/common"
)

var (
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrInvalidAge                = errors.New("age must be between 10 and 19")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
)

type EmailAlreadyExistsError struct {
	Email c.Email
}

func (e *EmailAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

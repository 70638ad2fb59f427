package user

import (
	"fmt"
	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"time"
)

const (
	MIN_AGE = 10
	MAX_AGE = 19
)

type ID string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

type PasswordResetToken string

// User is a teenager account. Age is bounded to the application's
// target audience (10-19).
type User struct {
	ID               ID
	Email            c.Email
	PasswordHash     PasswordHash
	FirstName        string
	LastName         string
	Age              int
	EmergencyContact c.Optional[string]
	IsActive         bool
	CreatedAt        time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %s", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %s", u.ID))
	}
	if u.Age < MIN_AGE || u.Age > MAX_AGE {
		return ErrInvalidAge
	}
	return nil
}

func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return "there"
	}
	return u.FirstName
}

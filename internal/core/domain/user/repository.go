package user

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email            c.Email
	PasswordHash     PasswordHash
	FirstName        string
	LastName         string
	Age              int
	EmergencyContact c.Optional[string]
	CreatedAt        time.Time
}

type UpdateUserInput struct {
	ID               ID
	FirstName        c.Optional[string]
	LastName         c.Optional[string]
	EmergencyContact c.Optional[c.Optional[string]]
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type SessionTokenGenerator interface {
	GenerateToken() SessionToken
}

type PasswordResetter interface {
	GenerateToken(u User) PasswordResetToken
	ValidateToken(u User, token PasswordResetToken) bool
	GetUserID(token PasswordResetToken) (ID, bool)
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, u User, token PasswordResetToken) error
}

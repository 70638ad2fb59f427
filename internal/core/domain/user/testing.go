package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "mindlog/internal/core/domain/common"
	"sync"
)

type FakeUserRepository struct {
	lock   sync.Mutex
	nextID int
	Users  map[ID]User

	CreateError error
	GetError    error
	UpdateError error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make(map[ID]User)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.CreateError != nil {
		return User{}, r.CreateError
	}
	for _, u := range r.Users {
		if u.Email == input.Email {
			return User{}, &EmailAlreadyExistsError{Email: input.Email}
		}
	}
	r.nextID++
	u := User{
		ID:               ID(fmt.Sprintf("user-%d", r.nextID)),
		Email:            input.Email,
		PasswordHash:     input.PasswordHash,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Age:              input.Age,
		EmergencyContact: input.EmergencyContact,
		IsActive:         true,
		CreatedAt:        input.CreatedAt,
	}
	r.Users[u.ID] = u
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetError != nil {
		return User{}, r.GetError
	}
	u, ok := r.Users[id]
	if !ok {
		return User{}, ErrUserDoesNotExist
	}
	return u, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetError != nil {
		return User{}, r.GetError
	}
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.UpdateError != nil {
		return User{}, r.UpdateError
	}
	u, ok := r.Users[input.ID]
	if !ok {
		return User{}, ErrUserDoesNotExist
	}
	if input.FirstName.IsPresent {
		u.FirstName = input.FirstName.Value
	}
	if input.LastName.IsPresent {
		u.LastName = input.LastName.Value
	}
	if input.EmergencyContact.IsPresent {
		u.EmergencyContact = input.EmergencyContact.Value
	}
	r.Users[u.ID] = u
	return u, nil
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return ErrUserDoesNotExist
	}
	u.PasswordHash = password
	r.Users[id] = u
	return nil
}

type FakeSessionRepository struct {
	lock        sync.Mutex
	users       *FakeUserRepository
	Sessions    map[SessionToken]ID
	CreateError error
}

func NewFakeSessionRepository(users *FakeUserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{users: users, Sessions: make(map[SessionToken]ID)}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.CreateError != nil {
		return r.CreateError
	}
	r.Sessions[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (User, error) {
	r.lock.Lock()
	userID, ok := r.Sessions[token]
	r.lock.Unlock()
	if !ok {
		return User{}, ErrUserDoesNotExist
	}
	return r.users.GetByID(ctx, userID)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.Sessions[token]
	if !ok {
		return userID, ErrUserDoesNotExist
	}
	delete(r.Sessions, token)
	return userID, nil
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

type FakePasswordResetTokenSender struct {
	lock        sync.Mutex
	Sent        []User
	ReturnError bool
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token for user %v", u)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, u)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

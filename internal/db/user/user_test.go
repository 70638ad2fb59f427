package user

import (
	"context"
	"errors"
	"testing"
	"time"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2023, 5, 15, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(email string) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail(email),
		PasswordHash: PASSWORD_HASH,
		FirstName:    "Alex",
		LastName:     "Doe",
		Age:          16,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:            c.NewEmail(EMAIL),
		PasswordHash:     PASSWORD_HASH,
		FirstName:        "Alex",
		LastName:         "Doe",
		Age:              16,
		EmergencyContact: c.NewOptional("mom 555-0101", true),
		CreatedAt:        NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEmpty(u.ID)
	assert.Equal(c.NewEmail(EMAIL), u.Email)
	assert.Equal(user.PasswordHash(PASSWORD_HASH), u.PasswordHash)
	assert.Equal("Alex", u.FirstName)
	assert.Equal(16, u.Age)
	assert.Equal(c.NewOptional("mom 555-0101", true), u.EmergencyContact)
	assert.True(u.IsActive)
	assert.True(NOW.Equal(u.CreatedAt))
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail(EMAIL),
		PasswordHash: PASSWORD_HASH,
		Age:          15,
		CreatedAt:    NOW,
	})

	assert := suite.Require()
	var emailExistsErr *user.EmailAlreadyExistsError
	assert.True(errors.As(err, &emailExistsErr))
	assert.Equal(c.NewEmail(EMAIL), emailExistsErr.Email)
}

func (suite *testSuite) TestGetByID() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(c.NewEmail(EMAIL), u.Email)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), user.ID("7c8bd191-7f68-48e0-b54a-4b4f1d0bb0f3"))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
}

func (suite *testSuite) TestUpdate() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:               created.ID,
		FirstName:        c.NewOptional("Sam", true),
		EmergencyContact: c.NewOptional(c.NewOptional("dad 555-0102", true), true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Sam", u.FirstName)
	assert.Equal("Doe", u.LastName)
	assert.Equal(c.NewOptional("dad 555-0102", true), u.EmergencyContact)
}

func (suite *testSuite) TestUpdateClearsEmergencyContact() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:               created.ID,
		EmergencyContact: c.NewOptional(c.Optional[string]{}, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(u.EmergencyContact.IsPresent)
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createUser(EMAIL)

	err := suite.repo.SetPassword(context.Background(), created.ID, user.PasswordHash("new-hash"))
	suite.Require().Nil(err)

	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-hash"), u.PasswordHash)
}

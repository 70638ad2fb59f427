package chat

import (
	"context"
	"testing"
	"time"

	"mindlog/internal/core/domain/chat"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/db"
	dbuser "mindlog/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2023, 5, 15, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	sessions *PgxSessionRepository
	messages *PgxMessageRepository
	userID   user.ID
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.sessions = NewPgxSessionRepository(suite.pool)
	suite.messages = NewPgxMessageRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) SetupTest() {
	u, err := dbuser.NewPgxRepository(suite.pool).Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("test@test.test"),
		PasswordHash: "test-password-hash",
		Age:          16,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	suite.userID = u.ID
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxChatRepositories(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createSession(title string, at time.Time) chat.Session {
	s, err := suite.sessions.Create(context.Background(), chat.CreateSessionInput{
		UserID:    suite.userID,
		Title:     title,
		CreatedAt: at,
	})
	suite.Require().Nil(err)
	return s
}

func (suite *testSuite) createMessage(sessionID chat.SessionID, role chat.Role, content string, at time.Time) {
	_, err := suite.messages.Create(context.Background(), chat.CreateMessageInput{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: at,
	})
	suite.Require().Nil(err)
}

func (suite *testSuite) TestGetByIDScopedToOwner() {
	s := suite.createSession("How do I handle stress?", NOW)

	got, err := suite.sessions.GetByID(context.Background(), s.ID, suite.userID)
	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(s.ID, got.ID)

	_, err = suite.sessions.GetByID(
		context.Background(),
		s.ID,
		user.ID("7c8bd191-7f68-48e0-b54a-4b4f1d0bb0f3"),
	)
	assert.ErrorIs(err, chat.ErrSessionDoesNotExist)
}

func (suite *testSuite) TestTouchBumpsUpdatedAt() {
	s := suite.createSession("How do I handle stress?", NOW)

	err := suite.sessions.Touch(context.Background(), s.ID, NOW.Add(time.Hour))
	suite.Require().Nil(err)

	got, err := suite.sessions.GetByID(context.Background(), s.ID, suite.userID)
	assert := suite.Require()
	assert.Nil(err)
	assert.True(NOW.Add(time.Hour).Equal(got.UpdatedAt))
}

func (suite *testSuite) TestReadWithRecentMessages() {
	assert := suite.Require()
	older := suite.createSession("First talk", NOW)
	newer := suite.createSession("Second talk", NOW.Add(time.Hour))
	suite.createMessage(older.ID, chat.RoleUser, "Hi", NOW.Add(time.Minute))
	suite.createMessage(older.ID, chat.RoleAssistant, "Hello Alex!", NOW.Add(2*time.Minute))
	suite.createMessage(older.ID, chat.RoleUser, "I feel anxious", NOW.Add(3*time.Minute))

	sessions, err := suite.sessions.ReadWithRecentMessages(context.Background(), suite.userID, 2)

	assert.Nil(err)
	assert.Len(sessions, 2)
	assert.Equal(newer.ID, sessions[0].Session.ID)
	assert.Empty(sessions[0].Messages)
	assert.Equal(older.ID, sessions[1].Session.ID)
	// only the two most recent messages, newest first
	assert.Len(sessions[1].Messages, 2)
	assert.Equal("I feel anxious", sessions[1].Messages[0].Content)
	assert.Equal("Hello Alex!", sessions[1].Messages[1].Content)
}

func (suite *testSuite) TestMessagesDeletedWithSession() {
	assert := suite.Require()
	s := suite.createSession("First talk", NOW)
	suite.createMessage(s.ID, chat.RoleUser, "Hi", NOW)

	_, err := suite.pool.Exec(context.Background(), "DELETE FROM chat_session WHERE id = $1", string(s.ID))
	assert.Nil(err)

	var count int
	err = suite.pool.QueryRow(
		context.Background(),
		"SELECT COUNT(*) FROM chat_message WHERE session_id = $1",
		string(s.ID),
	).Scan(&count)
	assert.Nil(err)
	assert.Equal(0, count)
}

package sendchatmessage

import (
	"context"
	"errors"
	"mindlog/internal/core/domain/chat"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("user-1")

var Now = time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger    *logging.FakeLogger
	sessions  *chat.FakeSessionRepository
	messages  *chat.FakeMessageRepository
	stream    *chat.FakeStream
	completer *chat.FakeCompleter
	sink      *chat.CollectingSink
	service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.sessions = chat.NewFakeSessionRepository()
	suite.messages = chat.NewFakeMessageRepository()
	suite.stream = &chat.FakeStream{}
	suite.completer = &chat.FakeCompleter{Stream: suite.stream}
	suite.sink = &chat.CollectingSink{}
	suite.service = New(
		suite.logger,
		suite.sessions,
		suite.messages,
		suite.completer,
		func() time.Time { return Now },
	)
}

func TestSendChatMessageService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) run(input Input) (Result, error) {
	input.User = user.User{ID: USER_ID, FirstName: "Alex", Age: 16}
	input.Sink = s.sink
	return s.service.Run(context.Background(), input)
}

func (s *testSuite) TestStreamsAndPersistsOnce() {
	s.stream.Deltas = []chat.Delta{{Content: "Hi "}, {Content: "there"}}

	result, err := s.run(Input{Message: "I feel anxious today"})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal("Hi there", result.AssistantContent)
	assert.Equal("Hi there", s.sink.Content())
	assert.True(s.sink.DoneSeen)
	assert.True(s.stream.Closed)

	userMessages := s.messages.ByRole(chat.RoleUser)
	assert.Len(userMessages, 1)
	assert.Equal("I feel anxious today", userMessages[0].Content)
	assistantMessages := s.messages.ByRole(chat.RoleAssistant)
	assert.Len(assistantMessages, 1)
	assert.Equal("Hi there", assistantMessages[0].Content)
}

func (s *testSuite) TestNewSessionGetsTitleFromMessage() {
	s.stream.Deltas = []chat.Delta{{Content: "ok"}}
	longMessage := strings.Repeat("a", 60)

	result, err := s.run(Input{Message: longMessage})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(strings.Repeat("a", 50)+"...", result.Session.Title)
	assert.Len(s.sink.Events, 1)
	assert.Equal(result.Session.ID, s.sink.Events[0].Session.ID)
}

func (s *testSuite) TestReusesOwnSession() {
	existing, err := s.sessions.Create(context.Background(), chat.CreateSessionInput{
		UserID:    USER_ID,
		Title:     "first chat",
		CreatedAt: Now.Add(-time.Hour),
	})
	s.Require().Nil(err)
	s.stream.Deltas = []chat.Delta{{Content: "ok"}}

	result, err := s.run(Input{
		Message:   "still here",
		SessionID: c.NewOptional(existing.ID, true),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(existing.ID, result.Session.ID)
	assert.Len(s.sessions.Sessions, 1)
}

func (s *testSuite) TestForeignSessionStartsFreshOne() {
	foreign, err := s.sessions.Create(context.Background(), chat.CreateSessionInput{
		UserID:    user.ID("user-2"),
		Title:     "someone else",
		CreatedAt: Now.Add(-time.Hour),
	})
	s.Require().Nil(err)
	s.stream.Deltas = []chat.Delta{{Content: "ok"}}

	result, err := s.run(Input{
		Message:   "hello",
		SessionID: c.NewOptional(foreign.ID, true),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.NotEqual(foreign.ID, result.Session.ID)
	assert.Equal(USER_ID, result.Session.UserID)
}

func (s *testSuite) TestUpstreamErrorBeforeAnyDelta() {
	s.completer.CompleteError = errors.New("connection refused")

	_, err := s.run(Input{Message: "hello"})

	assert := s.Require()
	assert.ErrorIs(err, chat.ErrUpstream)
	// The user's message is still durable.
	assert.Len(s.messages.ByRole(chat.RoleUser), 1)
	assert.Empty(s.messages.ByRole(chat.RoleAssistant))
	assert.False(s.sink.DoneSeen)
}

func (s *testSuite) TestStreamErrorMidwayDoesNotPersistAssistant() {
	s.stream.Deltas = []chat.Delta{{Content: "partial "}}
	s.stream.RecvErr = errors.New("connection reset")

	_, err := s.run(Input{Message: "hello"})

	assert := s.Require()
	assert.ErrorIs(err, chat.ErrUpstream)
	assert.Equal("partial ", s.sink.Content())
	assert.Empty(s.messages.ByRole(chat.RoleAssistant))
	assert.False(s.sink.DoneSeen)
}

func (s *testSuite) TestEmptyStreamPersistsNothing() {
	s.stream.Deltas = nil

	_, err := s.run(Input{Message: "hello"})

	assert := s.Require()
	assert.Nil(err)
	assert.True(s.sink.DoneSeen)
	assert.Empty(s.messages.ByRole(chat.RoleAssistant))
}

func (s *testSuite) TestPromptWindowIsBounded() {
	s.stream.Deltas = []chat.Delta{{Content: "ok"}}
	history := make([]chat.PromptMessage, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, chat.PromptMessage{Role: chat.RoleUser, Content: "m"})
	}

	_, err := s.run(Input{Message: "hello", Messages: history})

	assert := s.Require()
	assert.Nil(err)
	prompt := s.completer.LastInput.Messages
	assert.Len(prompt, CONTEXT_WINDOW+1)
	assert.Equal(chat.RoleSystem, prompt[0].Role)
	assert.Contains(prompt[0].Content, "Alex")
}

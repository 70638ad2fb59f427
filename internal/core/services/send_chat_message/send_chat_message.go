package sendchatmessage

import (
	"context"
	"errors"
	"io"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/chat"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	"strings"
	"time"
)

// CONTEXT_WINDOW bounds how much conversation history goes upstream.
const CONTEXT_WINDOW = 10

type Input struct {
	User      user.User
	Message   string
	SessionID c.Optional[chat.SessionID]
	// Messages is the caller's view of the conversation so far,
	// including the message being sent.
	Messages []chat.PromptMessage
	Sink     chat.DeltaSink
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) GetRateLimitKey() string {
	return "send-chat-message::" + string(i.User.ID)
}

type Result struct {
	Session          chat.Session
	AssistantContent string
}

type service struct {
	log               logging.Logger
	sessionRepository chat.SessionRepository
	messageRepository chat.MessageRepository
	completer         chat.Completer
	now               func() time.Time
}

func New(
	log logging.Logger,
	sessionRepository chat.SessionRepository,
	messageRepository chat.MessageRepository,
	completer chat.Completer,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if messageRepository == nil {
		panic(e.NewNilArgumentError("messageRepository"))
	}
	if completer == nil {
		panic(e.NewNilArgumentError("completer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		sessionRepository: sessionRepository,
		messageRepository: messageRepository,
		completer:         completer,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Sink == nil {
		panic(e.NewNilArgumentError("input.Sink"))
	}

	session, err := s.getOrCreateSession(ctx, input)
	if err != nil {
		return result, err
	}

	// The user's message is durable even if the upstream call fails.
	_, err = s.messageRepository.Create(ctx, chat.CreateMessageInput{
		SessionID: session.ID,
		Role:      chat.RoleUser,
		Content:   input.Message,
		CreatedAt: s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("sessionId", session.ID))
		return result, err
	}

	stream, err := s.completer.Complete(ctx, chat.CompleteInput{
		Messages: s.promptMessages(input),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Completion request failed.",
			logging.Entry("sessionId", session.ID),
			logging.Entry("err", err),
		)
		return result, chat.ErrUpstream
	}
	defer stream.Close()

	assistantContent := strings.Builder{}
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.log.Error(
				ctx,
				"Completion stream failed.",
				logging.Entry("sessionId", session.ID),
				logging.Entry("err", err),
			)
			return result, chat.ErrUpstream
		}
		if delta.Content == "" {
			continue
		}
		assistantContent.WriteString(delta.Content)
		if err := input.Sink.Delta(chat.DeltaEvent{Content: delta.Content, Session: session}); err != nil {
			s.log.Warning(
				ctx,
				"Could not push delta to the caller, dropping the stream.",
				logging.Entry("sessionId", session.ID),
				logging.Entry("err", err),
			)
			return result, err
		}
	}

	// Persist the assistant's reply exactly once, only when the stream
	// completed and produced something.
	content := strings.TrimSpace(assistantContent.String())
	if content != "" {
		_, err = s.messageRepository.Create(ctx, chat.CreateMessageInput{
			SessionID: session.ID,
			Role:      chat.RoleAssistant,
			Content:   content,
			CreatedAt: s.now(),
		})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("sessionId", session.ID))
			return result, err
		}
	}
	if err := s.sessionRepository.Touch(ctx, session.ID, s.now()); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("sessionId", session.ID))
	}
	if err := input.Sink.Done(); err != nil {
		return result, err
	}

	s.log.Info(
		ctx,
		"Chat message processed.",
		logging.Entry("sessionId", session.ID),
		logging.Entry("userId", input.User.ID),
		logging.Entry("assistantContentLength", len(content)),
	)
	return Result{Session: session, AssistantContent: content}, nil
}

// getOrCreateSession resolves the target session. An unknown or
// foreign session id silently starts a fresh session rather than
// leaking whether the id exists.
func (s *service) getOrCreateSession(ctx context.Context, input Input) (chat.Session, error) {
	if input.SessionID.IsPresent {
		session, err := s.sessionRepository.GetByID(ctx, input.SessionID.Value, input.User.ID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, chat.ErrSessionDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("sessionId", input.SessionID.Value))
			return chat.Session{}, err
		}
	}
	session, err := s.sessionRepository.Create(ctx, chat.CreateSessionInput{
		UserID:    input.User.ID,
		Title:     chat.NewSessionTitle(input.Message),
		CreatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return chat.Session{}, err
	}
	return session, nil
}

func (s *service) promptMessages(input Input) []chat.PromptMessage {
	window := input.Messages
	if len(window) == 0 {
		window = []chat.PromptMessage{{Role: chat.RoleUser, Content: input.Message}}
	}
	if len(window) > CONTEXT_WINDOW {
		window = window[len(window)-CONTEXT_WINDOW:]
	}
	prompt := make([]chat.PromptMessage, 0, len(window)+1)
	prompt = append(prompt, chat.PromptMessage{
		Role:    chat.RoleSystem,
		Content: systemPrompt(input.User.DisplayName()),
	})
	return append(prompt, window...)
}

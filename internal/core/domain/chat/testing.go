package chat

import (
	"context"
	"fmt"
	"io"
	"mindlog/internal/core/domain/user"
	"sync"
	"time"
)

type FakeSessionRepository struct {
	lock     sync.Mutex
	nextID   int
	Sessions map[SessionID]Session

	CreateError error
	GetError    error
	ReadError   error
}

func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{Sessions: make(map[SessionID]Session)}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) (Session, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.CreateError != nil {
		return Session{}, r.CreateError
	}
	r.nextID++
	s := Session{
		ID:        SessionID(fmt.Sprintf("session-%d", r.nextID)),
		UserID:    input.UserID,
		Title:     input.Title,
		CreatedAt: input.CreatedAt,
		UpdatedAt: input.CreatedAt,
	}
	r.Sessions[s.ID] = s
	return s, nil
}

func (r *FakeSessionRepository) GetByID(ctx context.Context, id SessionID, userID user.ID) (Session, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetError != nil {
		return Session{}, r.GetError
	}
	s, ok := r.Sessions[id]
	if !ok || s.UserID != userID {
		return Session{}, ErrSessionDoesNotExist
	}
	return s, nil
}

func (r *FakeSessionRepository) Touch(ctx context.Context, id SessionID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	s, ok := r.Sessions[id]
	if !ok {
		return ErrSessionDoesNotExist
	}
	s.UpdatedAt = at
	r.Sessions[id] = s
	return nil
}

func (r *FakeSessionRepository) ReadWithRecentMessages(
	ctx context.Context,
	userID user.ID,
	messagesPerSession int,
) ([]SessionWithMessages, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	sessions := make([]SessionWithMessages, 0)
	for _, s := range r.Sessions {
		if s.UserID == userID {
			sessions = append(sessions, SessionWithMessages{Session: s})
		}
	}
	return sessions, nil
}

type FakeMessageRepository struct {
	lock        sync.Mutex
	nextID      int
	Messages    []Message
	CreateError error
}

func NewFakeMessageRepository() *FakeMessageRepository {
	return &FakeMessageRepository{}
}

func (r *FakeMessageRepository) Create(ctx context.Context, input CreateMessageInput) (Message, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.CreateError != nil {
		return Message{}, r.CreateError
	}
	r.nextID++
	m := Message{
		ID:        MessageID(fmt.Sprintf("message-%d", r.nextID)),
		SessionID: input.SessionID,
		Role:      input.Role,
		Content:   input.Content,
		CreatedAt: input.CreatedAt,
	}
	r.Messages = append(r.Messages, m)
	return m, nil
}

func (r *FakeMessageRepository) ByRole(role Role) []Message {
	r.lock.Lock()
	defer r.lock.Unlock()
	messages := make([]Message, 0)
	for _, m := range r.Messages {
		if m.Role == role {
			messages = append(messages, m)
		}
	}
	return messages
}

// FakeStream replays scripted deltas, then optionally fails, then
// reports io.EOF.
type FakeStream struct {
	Deltas   []Delta
	RecvErr  error
	position int
	Closed   bool
}

func (s *FakeStream) Recv() (Delta, error) {
	if s.position < len(s.Deltas) {
		d := s.Deltas[s.position]
		s.position++
		return d, nil
	}
	if s.RecvErr != nil {
		return Delta{}, s.RecvErr
	}
	return Delta{}, io.EOF
}

func (s *FakeStream) Close() error {
	s.Closed = true
	return nil
}

type FakeCompleter struct {
	Stream        *FakeStream
	CompleteError error
	LastInput     CompleteInput
	Calls         int
}

func (c *FakeCompleter) Complete(ctx context.Context, input CompleteInput) (Stream, error) {
	c.Calls++
	c.LastInput = input
	if c.CompleteError != nil {
		return nil, c.CompleteError
	}
	return c.Stream, nil
}

// CollectingSink records every pushed event for assertions.
type CollectingSink struct {
	Events   []DeltaEvent
	DoneSeen bool

	DeltaError error
}

func (s *CollectingSink) Delta(event DeltaEvent) error {
	if s.DeltaError != nil {
		return s.DeltaError
	}
	s.Events = append(s.Events, event)
	return nil
}

func (s *CollectingSink) Done() error {
	s.DoneSeen = true
	return nil
}

func (s *CollectingSink) Content() string {
	content := ""
	for _, event := range s.Events {
		content += event.Content
	}
	return content
}

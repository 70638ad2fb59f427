package chat

import (
	"context"
	"mindlog/internal/core/domain/user"
	"time"
)

type CreateSessionInput struct {
	UserID    user.ID
	Title     string
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) (Session, error)
	// GetByID returns the session only if it belongs to the given user.
	GetByID(ctx context.Context, id SessionID, userID user.ID) (Session, error)
	Touch(ctx context.Context, id SessionID, at time.Time) error
	// ReadWithRecentMessages returns the user's sessions ordered by
	// UpdatedAt descending, each with up to messagesPerSession most
	// recent messages (newest first).
	ReadWithRecentMessages(ctx context.Context, userID user.ID, messagesPerSession int) ([]SessionWithMessages, error)
}

type CreateMessageInput struct {
	SessionID SessionID
	Role      Role
	Content   string
	CreatedAt time.Time
}

type MessageRepository interface {
	Create(ctx context.Context, input CreateMessageInput) (Message, error)
}

// Stream yields deltas until the upstream signals completion, at which
// point Recv returns io.EOF.
type Stream interface {
	Recv() (Delta, error)
	Close() error
}

type CompleteInput struct {
	Messages []PromptMessage
}

type Completer interface {
	Complete(ctx context.Context, input CompleteInput) (Stream, error)
}

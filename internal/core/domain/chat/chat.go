package chat

import (
	"mindlog/internal/core/domain/user"
	"time"
)

type SessionID string

type MessageID string

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const SESSION_TITLE_MAX_LENGTH = 50

type Session struct {
	ID        SessionID
	UserID    user.ID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID        MessageID
	SessionID SessionID
	Role      Role
	Content   string
	CreatedAt time.Time
}

type SessionWithMessages struct {
	Session  Session
	Messages []Message
}

// NewSessionTitle derives a session title from the first user message.
func NewSessionTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= SESSION_TITLE_MAX_LENGTH {
		return message
	}
	return string(runes[:SESSION_TITLE_MAX_LENGTH]) + "..."
}

// PromptMessage is one entry of the conversation window sent upstream.
type PromptMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Delta is one incremental piece of assistant output.
type Delta struct {
	Content string
}

// DeltaEvent is what gets pushed to the caller for each delta: the
// content fragment plus the session it belongs to, so a caller that
// started without a session learns its identity from the first event.
type DeltaEvent struct {
	Content string
	Session Session
}

// DeltaSink receives streamed output. Delta is called once per
// fragment in order; Done exactly once after the final fragment.
type DeltaSink interface {
	Delta(event DeltaEvent) error
	Done() error
}

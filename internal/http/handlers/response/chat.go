package response

import (
	"time"

	"mindlog/internal/core/domain/chat"
)

type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *ChatSession) FromDomainType(ds chat.Session) {
	s.ID = string(ds.ID)
	s.Title = ds.Title
	s.CreatedAt = ds.CreatedAt
	s.UpdatedAt = ds.UpdatedAt
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ChatMessage) FromDomainType(dm chat.Message) {
	m.ID = string(dm.ID)
	m.Role = string(dm.Role)
	m.Content = dm.Content
	m.CreatedAt = dm.CreatedAt
}

type ChatSessionWithMessages struct {
	ChatSession
	Messages []ChatMessage `json:"messages"`
}

func (s *ChatSessionWithMessages) FromDomainType(ds chat.SessionWithMessages) {
	s.ChatSession.FromDomainType(ds.Session)
	s.Messages = make([]ChatMessage, 0, len(ds.Messages))
	for _, dm := range ds.Messages {
		m := ChatMessage{}
		m.FromDomainType(dm)
		s.Messages = append(s.Messages, m)
	}
}

package sendmessage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/chat"
	e "mindlog/internal/core/domain/errors"
	ratelimiter "mindlog/internal/core/domain/rate_limiter"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/send_chat_message"
	"mindlog/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FALLBACK_MESSAGE is streamed in place of the assistant's reply when
// the upstream completion service is unavailable.
const FALLBACK_MESSAGE = "I'm having trouble responding right now. " +
	"Please try again in a moment. If you need support right away, " +
	"reach out to a trusted adult, or call or text 988 to reach the " +
	"Suicide & Crisis Lifeline."

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Input struct {
	Message   string          `json:"message"`
	SessionID *string         `json:"sessionId"`
	Messages  []PromptMessage `json:"messages"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Message, validation.Required, validation.Length(1, 4096)),
		validation.Field(&i.Messages, validation.Length(0, 100)),
	)
}

type deltaFrame struct {
	Content   string               `json:"content"`
	SessionID string               `json:"sessionId"`
	Session   response.ChatSession `json:"session"`
}

// eventStream is the chat.DeltaSink over the HTTP response. Frames
// follow the server-sent events format and every write is flushed so
// tokens reach the client as they arrive.
type eventStream struct {
	rw      http.ResponseWriter
	flusher http.Flusher
	started bool
}

func (s *eventStream) start() {
	if s.started {
		return
	}
	s.started = true
	s.rw.Header().Set("Content-Type", "text/event-stream")
	s.rw.Header().Set("Cache-Control", "no-cache")
	s.rw.Header().Set("Connection", "keep-alive")
	s.rw.WriteHeader(http.StatusOK)
}

func (s *eventStream) Delta(event chat.DeltaEvent) error {
	s.start()
	session := response.ChatSession{}
	session.FromDomainType(event.Session)
	payload, err := json.Marshal(deltaFrame{
		Content:   event.Content,
		SessionID: string(event.Session.ID),
		Session:   session,
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.rw, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *eventStream) Done() error {
	s.start()
	if _, err := io.WriteString(s.rw, "data: [DONE]\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	flusher, ok := rw.(http.Flusher)
	if !ok {
		response.RenderInternalError(rw)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	var sessionID c.Optional[chat.SessionID]
	if input.SessionID != nil {
		sessionID = c.NewOptional(chat.SessionID(*input.SessionID), true)
	}
	messages := make([]chat.PromptMessage, len(input.Messages))
	for ix, m := range input.Messages {
		messages[ix] = chat.PromptMessage{Role: chat.Role(m.Role), Content: m.Content}
	}

	sink := &eventStream{rw: rw, flusher: flusher}
	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Message:   input.Message,
			SessionID: sessionID,
			Messages:  messages,
			Sink:      sink,
		},
	)
	if err == nil {
		return
	}
	if r.Context().Err() != nil {
		// The caller went away, there is no one left to answer.
		return
	}

	if !sink.started {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
			return
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
			return
		case !errors.Is(err, chat.ErrUpstream):
			response.RenderError(rw, "failed to process chat message", http.StatusInternalServerError)
			return
		}
	}

	// The stream is already committed (or the upstream is down): finish
	// it with a supportive fallback so the client is never left hanging.
	fallbackErr := sink.Delta(chat.DeltaEvent{Content: FALLBACK_MESSAGE})
	if fallbackErr == nil {
		_ = sink.Done()
	}
}

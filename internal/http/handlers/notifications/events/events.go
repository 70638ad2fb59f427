package events

import (
	"context"
	"errors"
	"net/http"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	domainAuth "mindlog/internal/core/services/auth"
	service "mindlog/internal/core/services/get_user_by_session_token"
	"mindlog/internal/http/handlers/auth"
	"mindlog/internal/http/handlers/response"

	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	service   services.Service[service.Input, service.Result]
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[service.Input, service.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	// EventSource cannot set headers, the token arrives as a query
	// parameter instead.
	token, ok := auth.ParseToken(r)
	if !ok {
		tokenFromQuery := r.URL.Query().Get("token")
		if tokenFromQuery == "" || len(tokenFromQuery) > auth.AUTH_TOKEN_MAX_LEN {
			response.RenderUnauthorized(rw)
			return
		}
		token = user.SessionToken(tokenFromQuery)
		ctx := context.WithValue(r.Context(), domainAuth.CONTEXT_AUTH_TOKEN_KEY, token)
		r = r.WithContext(ctx)
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: token})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != string(result.User.ID) {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}

	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from notification events.",
			logging.Entry("userId", result.User.ID),
		)
		h.sseServer.RemoveStream(streamID)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to notification events.",
		logging.Entry("userId", result.User.ID),
		logging.Entry("streamId", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}

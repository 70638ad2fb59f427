package listsessions

import (
	"errors"
	"net/http"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/list_chat_sessions"
	"mindlog/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Sessions []response.ChatSessionWithMessages `json:"sessions"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	sessions := make([]response.ChatSessionWithMessages, len(result.Sessions))
	for ix, s := range result.Sessions {
		sessions[ix].FromDomainType(s)
	}
	response.Render(rw, Result{Sessions: sessions}, http.StatusOK)
}

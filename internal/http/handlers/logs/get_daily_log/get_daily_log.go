package getdailylog

import (
	"errors"
	"net/http"
	"time"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/get_daily_log"
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
	DailyLog response.DailyLog `json:"dailyLog"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	var date c.Optional[time.Time]
	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		parsed, err := time.Parse(response.DATE_FORMAT, rawDate)
		if err != nil {
			response.RenderError(rw, "invalid date", http.StatusBadRequest)
			return
		}
		date = c.NewOptional(parsed, true)
	}

	result, err := h.service.Run(r.Context(), service.Input{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, dailylog.ErrDailyLogDoesNotExist):
			response.RenderError(rw, "daily log does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	l := response.DailyLog{}
	l.FromDomainType(result.DailyLog)
	response.Render(rw, Result{DailyLog: l}, http.StatusOK)
}

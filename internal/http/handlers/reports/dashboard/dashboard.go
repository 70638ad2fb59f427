package dashboard

import (
	"errors"
	"net/http"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/dashboard"
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

type Stats struct {
	Streak      int     `json:"streak"`
	AverageMood float64 `json:"averageMood"`
	TotalLogs   int     `json:"totalLogs"`
}

type Result struct {
	TodayLog *response.DailyLog `json:"todayLog"`
	Stats    Stats              `json:"stats"`
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

	var todayLog *response.DailyLog
	if result.TodayLog.IsPresent {
		todayLog = &response.DailyLog{}
		todayLog.FromDomainType(result.TodayLog.Value)
	}
	response.Render(
		rw,
		Result{
			TodayLog: todayLog,
			Stats: Stats{
				Streak:      result.Stats.Streak,
				AverageMood: result.Stats.AverageMood,
				TotalLogs:   result.Stats.TotalLogs,
			},
		},
		http.StatusOK,
	)
}

package progress

import (
	"errors"
	"net/http"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/progress"
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
	Streak              int     `json:"streak"`
	AverageMood         float64 `json:"averageMood"`
	AverageSleep        float64 `json:"averageSleep"`
	AverageEnergy       float64 `json:"averageEnergy"`
	MedicationAdherence float64 `json:"medicationAdherence"`
	WeeklyCheckIns      int     `json:"weeklyCheckIns"`
	GoodDays            int     `json:"goodDays"`
	Feedback            string  `json:"feedback"`
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

	response.Render(
		rw,
		Result{
			Streak:              result.Streak,
			AverageMood:         result.AverageMood,
			AverageSleep:        result.AverageSleep,
			AverageEnergy:       result.AverageEnergy,
			MedicationAdherence: result.MedicationAdherence,
			WeeklyCheckIns:      result.WeeklyCheckIns,
			GoodDays:            result.GoodDays,
			Feedback:            result.Feedback,
		},
		http.StatusOK,
	)
}

package weeklyreport

import (
	"errors"
	"net/http"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/weekly_report"
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

type WeekStats struct {
	Mood       float64 `json:"mood"`
	Sleep      float64 `json:"sleep"`
	Energy     float64 `json:"energy"`
	Medication float64 `json:"medication"`
}

type Summary struct {
	CheckInsCompleted int `json:"checkInsCompleted"`
	GoodDays          int `json:"goodDays"`
	ChallengingDays   int `json:"challengingDays"`
	TotalDays         int `json:"totalDays"`
}

type Result struct {
	PeriodStart  string    `json:"periodStart"`
	PeriodEnd    string    `json:"periodEnd"`
	Summary      Summary   `json:"summary"`
	CurrentWeek  WeekStats `json:"currentWeek"`
	PreviousWeek WeekStats `json:"previousWeek"`
	Trends       WeekStats `json:"trends"`
	TopEmotions  []string  `json:"topEmotions"`
	Insights     []string  `json:"insights"`
}

func fromDomainWeekStats(s service.WeekStats) WeekStats {
	return WeekStats{
		Mood:       s.Mood,
		Sleep:      s.Sleep,
		Energy:     s.Energy,
		Medication: s.Medication,
	}
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

	topEmotions := result.TopEmotions
	if topEmotions == nil {
		topEmotions = []string{}
	}
	insights := result.Insights
	if insights == nil {
		insights = []string{}
	}
	response.Render(
		rw,
		Result{
			PeriodStart: result.PeriodStart.Format(response.DATE_FORMAT),
			PeriodEnd:   result.PeriodEnd.Format(response.DATE_FORMAT),
			Summary: Summary{
				CheckInsCompleted: result.Summary.CheckInsCompleted,
				GoodDays:          result.Summary.GoodDays,
				ChallengingDays:   result.Summary.ChallengingDays,
				TotalDays:         result.Summary.TotalDays,
			},
			CurrentWeek:  fromDomainWeekStats(result.CurrentWeek),
			PreviousWeek: fromDomainWeekStats(result.PreviousWeek),
			Trends:       fromDomainWeekStats(result.Trends),
			TopEmotions:  topEmotions,
			Insights:     insights,
		},
		http.StatusOK,
	)
}

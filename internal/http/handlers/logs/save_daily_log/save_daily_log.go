package savedailylog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/save_daily_log"
	"mindlog/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	MoodRating        *int     `json:"moodRating"`
	EmotionCheckboxes []string `json:"emotionCheckboxes"`
	EmotionIntensity  *int     `json:"emotionIntensity"`
	PositiveMoments   *string  `json:"positiveMoments"`

	SleepQuality      *int     `json:"sleepQuality"`
	SleepDuration     *string  `json:"sleepDuration"`
	SleepDifficulties []string `json:"sleepDifficulties"`
	BedTime           *string  `json:"bedTime"`
	WakeUpTime        *string  `json:"wakeUpTime"`

	EnergyLevel        *int    `json:"energyLevel"`
	EnergyFluctuations *string `json:"energyFluctuations"`
	FunctionalImpact   *string `json:"functionalImpact"`

	AppetiteRating     *int     `json:"appetiteRating"`
	AppetiteComparison *string  `json:"appetiteComparison"`
	MealRegularity     []string `json:"mealRegularity"`

	MedicationTaken    *bool    `json:"medicationTaken"`
	SelfCareActivities []string `json:"selfCareActivities"`
	SocialInteractions []string `json:"socialInteractions"`
	Stressors          []string `json:"stressors"`
	CopingStrategies   []string `json:"copingStrategies"`

	GratefulFor *string `json:"gratefulFor"`
	Notes       *string `json:"notes"`
}

type Result struct {
	DailyLog response.DailyLog `json:"dailyLog"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.PositiveMoments, validation.Length(0, 4096)),
		validation.Field(&i.EnergyFluctuations, validation.Length(0, 4096)),
		validation.Field(&i.FunctionalImpact, validation.Length(0, 4096)),
		validation.Field(&i.GratefulFor, validation.Length(0, 4096)),
		validation.Field(&i.Notes, validation.Length(0, 4096)),
	)
}

func optionalInt(v *int) c.Optional[int] {
	if v == nil {
		return c.Optional[int]{}
	}
	return c.NewOptional(*v, true)
}

func optionalString(v *string) c.Optional[string] {
	if v == nil {
		return c.Optional[string]{}
	}
	return c.NewOptional(*v, true)
}

func optionalBool(v *bool) c.Optional[bool] {
	if v == nil {
		return c.Optional[bool]{}
	}
	return c.NewOptional(*v, true)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			MoodRating:        optionalInt(input.MoodRating),
			EmotionCheckboxes: input.EmotionCheckboxes,
			EmotionIntensity:  optionalInt(input.EmotionIntensity),
			PositiveMoments:   optionalString(input.PositiveMoments),

			SleepQuality:      optionalInt(input.SleepQuality),
			SleepDuration:     optionalString(input.SleepDuration),
			SleepDifficulties: input.SleepDifficulties,
			BedTime:           optionalString(input.BedTime),
			WakeUpTime:        optionalString(input.WakeUpTime),

			EnergyLevel:        optionalInt(input.EnergyLevel),
			EnergyFluctuations: optionalString(input.EnergyFluctuations),
			FunctionalImpact:   optionalString(input.FunctionalImpact),

			AppetiteRating:     optionalInt(input.AppetiteRating),
			AppetiteComparison: optionalString(input.AppetiteComparison),
			MealRegularity:     input.MealRegularity,

			MedicationTaken:    optionalBool(input.MedicationTaken),
			SelfCareActivities: input.SelfCareActivities,
			SocialInteractions: input.SocialInteractions,
			Stressors:          input.Stressors,
			CopingStrategies:   input.CopingStrategies,

			GratefulFor: optionalString(input.GratefulFor),
			Notes:       optionalString(input.Notes),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, dailylog.ErrInvalidRating):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	l := response.DailyLog{}
	l.FromDomainType(result.DailyLog)
	response.Render(rw, Result{DailyLog: l}, http.StatusOK)
}

package response

import (
	"time"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
)

type DailyLog struct {
	ID   string `json:"id"`
	Date string `json:"date"`

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

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const DATE_FORMAT = "2006-01-02"

func (l *DailyLog) FromDomainType(dl dailylog.DailyLog) {
	l.ID = string(dl.ID)
	l.Date = dl.Date.Format(DATE_FORMAT)
	l.MoodRating = optionalInt(dl.MoodRating)
	l.EmotionCheckboxes = stringList(dl.EmotionCheckboxes)
	l.EmotionIntensity = optionalInt(dl.EmotionIntensity)
	l.PositiveMoments = optionalString(dl.PositiveMoments)
	l.SleepQuality = optionalInt(dl.SleepQuality)
	l.SleepDuration = optionalString(dl.SleepDuration)
	l.SleepDifficulties = stringList(dl.SleepDifficulties)
	l.BedTime = optionalString(dl.BedTime)
	l.WakeUpTime = optionalString(dl.WakeUpTime)
	l.EnergyLevel = optionalInt(dl.EnergyLevel)
	l.EnergyFluctuations = optionalString(dl.EnergyFluctuations)
	l.FunctionalImpact = optionalString(dl.FunctionalImpact)
	l.AppetiteRating = optionalInt(dl.AppetiteRating)
	l.AppetiteComparison = optionalString(dl.AppetiteComparison)
	l.MealRegularity = stringList(dl.MealRegularity)
	if dl.MedicationTaken.IsPresent {
		l.MedicationTaken = &dl.MedicationTaken.Value
	}
	l.SelfCareActivities = stringList(dl.SelfCareActivities)
	l.SocialInteractions = stringList(dl.SocialInteractions)
	l.Stressors = stringList(dl.Stressors)
	l.CopingStrategies = stringList(dl.CopingStrategies)
	l.GratefulFor = optionalString(dl.GratefulFor)
	l.Notes = optionalString(dl.Notes)
	l.CreatedAt = dl.CreatedAt
	l.UpdatedAt = dl.UpdatedAt
}

func optionalInt(v c.Optional[int]) *int {
	if !v.IsPresent {
		return nil
	}
	return &v.Value
}

func optionalString(v c.Optional[string]) *string {
	if !v.IsPresent {
		return nil
	}
	return &v.Value
}

func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

package response

import (
	"time"

	"mindlog/internal/core/domain/medication"
)

type Medication struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Dosage        *string    `json:"dosage"`
	Frequency     *string    `json:"frequency"`
	ReminderTimes []string   `json:"reminderTimes"`
	ReminderDate  *time.Time `json:"reminderDate"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (m *Medication) FromDomainType(dm medication.Medication) {
	m.ID = string(dm.ID)
	m.Name = dm.Name
	if dm.Dosage.IsPresent {
		m.Dosage = &dm.Dosage.Value
	}
	if dm.Frequency.IsPresent {
		m.Frequency = &dm.Frequency.Value
	}
	m.ReminderTimes = dm.ReminderTimes
	if m.ReminderTimes == nil {
		m.ReminderTimes = []string{}
	}
	if dm.ReminderDate.IsPresent {
		m.ReminderDate = &dm.ReminderDate.Value
	}
	m.IsActive = dm.IsActive
	m.CreatedAt = dm.CreatedAt
	m.UpdatedAt = dm.UpdatedAt
}

type Intake struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medicationId"`
	TakenAt      time.Time `json:"takenAt"`
}

func (i *Intake) FromDomainType(di medication.Intake) {
	i.ID = string(di.ID)
	i.MedicationID = string(di.MedicationID)
	i.TakenAt = di.TakenAt
}

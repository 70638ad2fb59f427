package medication

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	UserID        user.ID
	Name          string
	Dosage        c.Optional[string]
	Frequency     c.Optional[string]
	ReminderTimes []string
	ReminderDate  c.Optional[time.Time]
	IsActive      bool
	CreatedAt     time.Time
}

// UpdateInput carries partial updates; absent fields are left intact.
// The double Optional on Dosage, Frequency and ReminderDate
// distinguishes "not supplied" from "explicitly cleared".
type UpdateInput struct {
	ID            ID
	UserID        user.ID
	Name          c.Optional[string]
	Dosage        c.Optional[c.Optional[string]]
	Frequency     c.Optional[c.Optional[string]]
	ReminderTimes c.Optional[[]string]
	ReminderDate  c.Optional[c.Optional[time.Time]]
	IsActive      c.Optional[bool]
	UpdatedAt     time.Time
}

type ReadOptions struct {
	UserIDEquals c.Optional[user.ID]
	ActiveOnly   bool
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Medication, error)
	GetByID(ctx context.Context, id ID) (Medication, error)
	Read(ctx context.Context, options ReadOptions) ([]Medication, error)
	Update(ctx context.Context, input UpdateInput) (Medication, error)
	Delete(ctx context.Context, id ID, userID user.ID) error
}

// Intake is one adherence record: the user confirmed taking a
// medication at a point in time.
type Intake struct {
	ID           ID
	MedicationID ID
	UserID       user.ID
	TakenAt      time.Time
}

type CreateIntakeInput struct {
	MedicationID ID
	UserID       user.ID
	TakenAt      time.Time
}

type IntakeRepository interface {
	Create(ctx context.Context, input CreateIntakeInput) (Intake, error)
}

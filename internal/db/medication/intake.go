package medication

import (
	"context"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/db"
)

type PgxIntakeRepository struct {
	db db.Queryable
}

func NewPgxIntakeRepository(db db.Queryable) *PgxIntakeRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxIntakeRepository{db: db}
}

func (r *PgxIntakeRepository) Create(
	ctx context.Context,
	input medication.CreateIntakeInput,
) (intake medication.Intake, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO medication_intake (medication_id, user_id, taken_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, medication_id, user_id, taken_at`,
		string(input.MedicationID),
		string(input.UserID),
		input.TakenAt,
	)
	err = row.Scan(&intake.ID, &intake.MedicationID, &intake.UserID, &intake.TakenAt)
	return intake, err
}

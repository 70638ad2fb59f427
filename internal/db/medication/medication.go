package medication

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/db"

	"github.com/jackc/pgx/v4"
)

const medicationColumns = `id, user_id, name, dosage, frequency, reminder_times, reminder_date, is_active, created_at, updated_at`

type PgxMedicationRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxMedicationRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxMedicationRepository{db: db}
}

func (r *PgxMedicationRepository) Create(
	ctx context.Context,
	input medication.CreateInput,
) (m medication.Medication, err error) {
	reminderTimes, err := encodeStringList(input.ReminderTimes)
	if err != nil {
		return m, err
	}
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO medication (user_id, name, dosage, frequency, reminder_times, reminder_date, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 RETURNING `+medicationColumns,
		string(input.UserID),
		input.Name,
		encodeOptionalString(input.Dosage),
		encodeOptionalString(input.Frequency),
		reminderTimes,
		encodeOptionalTime(input.ReminderDate),
		input.IsActive,
		input.CreatedAt,
	)
	return scanMedication(row)
}

func (r *PgxMedicationRepository) GetByID(ctx context.Context, id medication.ID) (m medication.Medication, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+medicationColumns+` FROM medication WHERE id = $1`, string(id))
	m, err = scanMedication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, medication.ErrMedicationDoesNotExist
	}
	return m, err
}

func (r *PgxMedicationRepository) Read(
	ctx context.Context,
	options medication.ReadOptions,
) (medications []medication.Medication, err error) {
	query := `SELECT ` + medicationColumns + ` FROM medication WHERE TRUE`
	args := make([]interface{}, 0, 2)
	if options.UserIDEquals.IsPresent {
		args = append(args, string(options.UserIDEquals.Value))
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if options.ActiveOnly {
		query += " AND is_active"
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return medications, err
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return medications, err
		}
		medications = append(medications, m)
	}
	return medications, rows.Err()
}

func (r *PgxMedicationRepository) Update(
	ctx context.Context,
	input medication.UpdateInput,
) (m medication.Medication, err error) {
	var reminderTimes sql.NullString
	if input.ReminderTimes.IsPresent {
		encoded, err := encodeStringList(input.ReminderTimes.Value)
		if err != nil {
			return m, err
		}
		reminderTimes = sql.NullString{String: encoded, Valid: true}
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE medication SET
			name = CASE WHEN $3 THEN $4 ELSE name END,
			dosage = CASE WHEN $5 THEN $6 ELSE dosage END,
			frequency = CASE WHEN $7 THEN $8 ELSE frequency END,
			reminder_times = CASE WHEN $9 THEN $10 ELSE reminder_times END,
			reminder_date = CASE WHEN $11 THEN $12 ELSE reminder_date END,
			is_active = CASE WHEN $13 THEN $14 ELSE is_active END,
			updated_at = $15
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+medicationColumns,
		string(input.ID),
		string(input.UserID),
		input.Name.IsPresent,
		input.Name.Value,
		input.Dosage.IsPresent,
		encodeOptionalString(input.Dosage.Value),
		input.Frequency.IsPresent,
		encodeOptionalString(input.Frequency.Value),
		input.ReminderTimes.IsPresent,
		reminderTimes,
		input.ReminderDate.IsPresent,
		encodeOptionalTime(input.ReminderDate.Value),
		input.IsActive.IsPresent,
		input.IsActive.Value,
		input.UpdatedAt,
	)
	m, err = scanMedication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, medication.ErrMedicationDoesNotExist
	}
	return m, err
}

func (r *PgxMedicationRepository) Delete(ctx context.Context, id medication.ID, userID user.ID) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM medication WHERE id = $1 AND user_id = $2`,
		string(id),
		string(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return medication.ErrMedicationDoesNotExist
	}
	return nil
}

func scanMedication(row pgx.Row) (m medication.Medication, err error) {
	var dosage, frequency, reminderTimes sql.NullString
	var reminderDate sql.NullTime
	err = row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&dosage,
		&frequency,
		&reminderTimes,
		&reminderDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return m, err
	}
	m.Dosage = c.NewOptional(dosage.String, dosage.Valid)
	m.Frequency = c.NewOptional(frequency.String, frequency.Valid)
	m.ReminderDate = c.NewOptional(reminderDate.Time, reminderDate.Valid)
	m.ReminderTimes = decodeStringList(reminderTimes)
	return m, nil
}

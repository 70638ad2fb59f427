package dailylog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const logColumns = `id, user_id, date, mood_rating, emotion_checkboxes, emotion_intensity, positive_moments,
	sleep_quality, sleep_duration, sleep_difficulties, bed_time, wake_up_time,
	energy_level, energy_fluctuations, functional_impact,
	appetite_rating, appetite_comparison, meal_regularity,
	medication_taken, self_care_activities, social_interactions, stressors, coping_strategies,
	grateful_for, notes, created_at, updated_at`

type PgxDailyLogRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxDailyLogRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxDailyLogRepository{db: db}
}

func (r *PgxDailyLogRepository) Upsert(
	ctx context.Context,
	input dailylog.UpsertInput,
) (l dailylog.DailyLog, err error) {
	if input.MedicationTakenOnly {
		return r.upsertMedicationTaken(ctx, input)
	}

	emotionCheckboxes, err := encodeStringList(input.EmotionCheckboxes)
	if err != nil {
		return l, err
	}
	sleepDifficulties, err := encodeStringList(input.SleepDifficulties)
	if err != nil {
		return l, err
	}
	mealRegularity, err := encodeStringList(input.MealRegularity)
	if err != nil {
		return l, err
	}
	selfCareActivities, err := encodeStringList(input.SelfCareActivities)
	if err != nil {
		return l, err
	}
	socialInteractions, err := encodeStringList(input.SocialInteractions)
	if err != nil {
		return l, err
	}
	stressors, err := encodeStringList(input.Stressors)
	if err != nil {
		return l, err
	}
	copingStrategies, err := encodeStringList(input.CopingStrategies)
	if err != nil {
		return l, err
	}

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO daily_log (
			user_id, date, mood_rating, emotion_checkboxes, emotion_intensity, positive_moments,
			sleep_quality, sleep_duration, sleep_difficulties, bed_time, wake_up_time,
			energy_level, energy_fluctuations, functional_impact,
			appetite_rating, appetite_comparison, meal_regularity,
			medication_taken, self_care_activities, social_interactions, stressors, coping_strategies,
			grateful_for, notes, created_at, updated_at
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		         $19, $20, $21, $22, $23, $24, $25, $25)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			mood_rating = EXCLUDED.mood_rating,
			emotion_checkboxes = EXCLUDED.emotion_checkboxes,
			emotion_intensity = EXCLUDED.emotion_intensity,
			positive_moments = EXCLUDED.positive_moments,
			sleep_quality = EXCLUDED.sleep_quality,
			sleep_duration = EXCLUDED.sleep_duration,
			sleep_difficulties = EXCLUDED.sleep_difficulties,
			bed_time = EXCLUDED.bed_time,
			wake_up_time = EXCLUDED.wake_up_time,
			energy_level = EXCLUDED.energy_level,
			energy_fluctuations = EXCLUDED.energy_fluctuations,
			functional_impact = EXCLUDED.functional_impact,
			appetite_rating = EXCLUDED.appetite_rating,
			appetite_comparison = EXCLUDED.appetite_comparison,
			meal_regularity = EXCLUDED.meal_regularity,
			medication_taken = EXCLUDED.medication_taken,
			self_care_activities = EXCLUDED.self_care_activities,
			social_interactions = EXCLUDED.social_interactions,
			stressors = EXCLUDED.stressors,
			coping_strategies = EXCLUDED.coping_strategies,
			grateful_for = EXCLUDED.grateful_for,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+logColumns,
		string(input.UserID),
		input.Date,
		encodeOptionalInt(input.MoodRating),
		emotionCheckboxes,
		encodeOptionalInt(input.EmotionIntensity),
		encodeOptionalString(input.PositiveMoments),
		encodeOptionalInt(input.SleepQuality),
		encodeOptionalString(input.SleepDuration),
		sleepDifficulties,
		encodeOptionalString(input.BedTime),
		encodeOptionalString(input.WakeUpTime),
		encodeOptionalInt(input.EnergyLevel),
		encodeOptionalString(input.EnergyFluctuations),
		encodeOptionalString(input.FunctionalImpact),
		encodeOptionalInt(input.AppetiteRating),
		encodeOptionalString(input.AppetiteComparison),
		mealRegularity,
		encodeOptionalBool(input.MedicationTaken),
		selfCareActivities,
		socialInteractions,
		stressors,
		copingStrategies,
		encodeOptionalString(input.GratefulFor),
		encodeOptionalString(input.Notes),
		input.At,
	)
	return scanLog(row)
}

// upsertMedicationTaken touches only the medication flag and notes,
// preserving the rest of an existing check-in.
func (r *PgxDailyLogRepository) upsertMedicationTaken(
	ctx context.Context,
	input dailylog.UpsertInput,
) (l dailylog.DailyLog, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO daily_log (user_id, date, medication_taken, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			medication_taken = EXCLUDED.medication_taken,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+logColumns,
		string(input.UserID),
		input.Date,
		encodeOptionalBool(input.MedicationTaken),
		encodeOptionalString(input.Notes),
		input.At,
	)
	return scanLog(row)
}

func (r *PgxDailyLogRepository) GetByDate(
	ctx context.Context,
	userID user.ID,
	date time.Time,
) (l dailylog.DailyLog, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+logColumns+` FROM daily_log WHERE user_id = $1 AND date = $2`,
		string(userID),
		date,
	)
	l, err = scanLog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return l, dailylog.ErrDailyLogDoesNotExist
	}
	return l, err
}

func (r *PgxDailyLogRepository) ReadRange(
	ctx context.Context,
	options dailylog.ReadRangeOptions,
) (logs []dailylog.DailyLog, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+logColumns+` FROM daily_log
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date DESC`,
		string(options.UserID),
		options.From,
		options.To,
	)
	if err != nil {
		return logs, err
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return logs, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *PgxDailyLogRepository) Count(ctx context.Context, userID user.ID) (int, error) {
	var count int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM daily_log WHERE user_id = $1`, string(userID))
	err := row.Scan(&count)
	return count, err
}

func scanLog(row pgx.Row) (l dailylog.DailyLog, err error) {
	var moodRating, emotionIntensity, sleepQuality, energyLevel, appetiteRating sql.NullInt32
	var positiveMoments, sleepDuration, bedTime, wakeUpTime sql.NullString
	var energyFluctuations, functionalImpact, appetiteComparison sql.NullString
	var gratefulFor, notes sql.NullString
	var medicationTaken sql.NullBool
	var emotionCheckboxes, sleepDifficulties, mealRegularity sql.NullString
	var selfCareActivities, socialInteractions, stressors, copingStrategies sql.NullString
	var date pgtype.Date

	err = row.Scan(
		&l.ID,
		&l.UserID,
		&date,
		&moodRating,
		&emotionCheckboxes,
		&emotionIntensity,
		&positiveMoments,
		&sleepQuality,
		&sleepDuration,
		&sleepDifficulties,
		&bedTime,
		&wakeUpTime,
		&energyLevel,
		&energyFluctuations,
		&functionalImpact,
		&appetiteRating,
		&appetiteComparison,
		&mealRegularity,
		&medicationTaken,
		&selfCareActivities,
		&socialInteractions,
		&stressors,
		&copingStrategies,
		&gratefulFor,
		&notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return l, err
	}

	l.Date = date.Time
	l.MoodRating = decodeOptionalInt(moodRating)
	l.EmotionCheckboxes = decodeStringList(emotionCheckboxes)
	l.EmotionIntensity = decodeOptionalInt(emotionIntensity)
	l.PositiveMoments = c.NewOptional(positiveMoments.String, positiveMoments.Valid)
	l.SleepQuality = decodeOptionalInt(sleepQuality)
	l.SleepDuration = c.NewOptional(sleepDuration.String, sleepDuration.Valid)
	l.SleepDifficulties = decodeStringList(sleepDifficulties)
	l.BedTime = c.NewOptional(bedTime.String, bedTime.Valid)
	l.WakeUpTime = c.NewOptional(wakeUpTime.String, wakeUpTime.Valid)
	l.EnergyLevel = decodeOptionalInt(energyLevel)
	l.EnergyFluctuations = c.NewOptional(energyFluctuations.String, energyFluctuations.Valid)
	l.FunctionalImpact = c.NewOptional(functionalImpact.String, functionalImpact.Valid)
	l.AppetiteRating = decodeOptionalInt(appetiteRating)
	l.AppetiteComparison = c.NewOptional(appetiteComparison.String, appetiteComparison.Valid)
	l.MealRegularity = decodeStringList(mealRegularity)
	l.MedicationTaken = c.NewOptional(medicationTaken.Bool, medicationTaken.Valid)
	l.SelfCareActivities = decodeStringList(selfCareActivities)
	l.SocialInteractions = decodeStringList(socialInteractions)
	l.Stressors = decodeStringList(stressors)
	l.CopingStrategies = decodeStringList(copingStrategies)
	l.GratefulFor = c.NewOptional(gratefulFor.String, gratefulFor.Valid)
	l.Notes = c.NewOptional(notes.String, notes.Valid)
	return l, nil
}

// String lists are stored as JSON text. A row whose list cannot be
// parsed degrades to an empty list instead of failing the read.
func encodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStringList(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(value.String), &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}

func encodeOptionalInt(v c.Optional[int]) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(v.Value), Valid: v.IsPresent}
}

func decodeOptionalInt(v sql.NullInt32) c.Optional[int] {
	return c.NewOptional(int(v.Int32), v.Valid)
}

func encodeOptionalString(v c.Optional[string]) sql.NullString {
	return sql.NullString{String: v.Value, Valid: v.IsPresent}
}

func encodeOptionalBool(v c.Optional[bool]) sql.NullBool {
	return sql.NullBool{Bool: v.Value, Valid: v.IsPresent}
}

package dailylog

import (
	c "mindlog/internal/core/domain/common"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var Now = time.Date(2023, 5, 15, 18, 0, 0, 0, time.UTC)

func logOn(date time.Time, mood int) DailyLog {
	return DailyLog{Date: date, MoodRating: c.NewOptional(mood, true)}
}

func TestStreak(t *testing.T) {
	today := Day(Now, time.UTC)

	t.Run("consecutive days", func(t *testing.T) {
		logs := []DailyLog{
			logOn(today, 5),
			logOn(today.AddDate(0, 0, -1), 5),
			logOn(today.AddDate(0, 0, -2), 5),
		}
		assert.Equal(t, 3, Streak(logs, Now, false, 30))
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		logs := []DailyLog{
			logOn(today, 5),
			logOn(today.AddDate(0, 0, -2), 5),
		}
		assert.Equal(t, 1, Streak(logs, Now, false, 30))
	})

	t.Run("missing today breaks the strict streak", func(t *testing.T) {
		logs := []DailyLog{logOn(today.AddDate(0, 0, -1), 5)}
		assert.Equal(t, 0, Streak(logs, Now, false, 30))
	})

	t.Run("missing today is forgiven when allowed", func(t *testing.T) {
		logs := []DailyLog{
			logOn(today.AddDate(0, 0, -1), 5),
			logOn(today.AddDate(0, 0, -2), 5),
		}
		assert.Equal(t, 2, Streak(logs, Now, true, 30))
	})

	t.Run("no logs", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil, Now, true, 30))
	})
}

func TestMedicationAdherence(t *testing.T) {
	taken := DailyLog{MedicationTaken: c.NewOptional(true, true)}
	missed := DailyLog{MedicationTaken: c.NewOptional(false, true)}
	unanswered := DailyLog{}

	assert.Equal(t, 0.0, MedicationAdherence(nil))
	assert.Equal(t, 0.0, MedicationAdherence([]DailyLog{unanswered}))
	assert.Equal(t, 100.0, MedicationAdherence([]DailyLog{taken, unanswered}))
	assert.Equal(t, 50.0, MedicationAdherence([]DailyLog{taken, missed}))
}

func TestTopEmotions(t *testing.T) {
	logs := []DailyLog{
		{EmotionCheckboxes: []string{"anxious", "tired"}},
		{EmotionCheckboxes: []string{"anxious"}},
		{EmotionCheckboxes: []string{"calm", "tired", "anxious"}},
	}

	assert.Equal(t, []string{"anxious", "tired", "calm"}, TopEmotions(logs, 3))
	assert.Equal(t, []string{"anxious"}, TopEmotions(logs, 1))
	assert.Empty(t, TopEmotions(nil, 3))
}

func TestAverageMoodCountsAbsentAsZero(t *testing.T) {
	logs := []DailyLog{
		{MoodRating: c.NewOptional(8, true)},
		{},
	}
	assert.Equal(t, 4.0, AverageMood(logs))
}

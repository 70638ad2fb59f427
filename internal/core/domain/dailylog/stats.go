package dailylog

import (
	"math"
	"sort"
	"time"

	c "mindlog/internal/core/domain/common"
)

const (
	GOOD_DAY_MOOD        = 6
	CHALLENGING_DAY_MOOD = 3
)

// Round1 rounds to one decimal place, the precision used by every
// reported average.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func average(logs []DailyLog, pick func(DailyLog) c.Optional[int]) float64 {
	if len(logs) == 0 {
		return 0
	}
	sum := 0
	for _, l := range logs {
		if v := pick(l); v.IsPresent {
			sum += v.Value
		}
	}
	return float64(sum) / float64(len(logs))
}

func AverageMood(logs []DailyLog) float64 {
	return average(logs, func(l DailyLog) c.Optional[int] { return l.MoodRating })
}

func AverageSleepQuality(logs []DailyLog) float64 {
	return average(logs, func(l DailyLog) c.Optional[int] { return l.SleepQuality })
}

func AverageEnergy(logs []DailyLog) float64 {
	return average(logs, func(l DailyLog) c.Optional[int] { return l.EnergyLevel })
}

// MedicationAdherence is the percentage of taken days among the logs
// that recorded medication at all. Logs with no medication answer do
// not count against the user.
func MedicationAdherence(logs []DailyLog) float64 {
	recorded, taken := 0, 0
	for _, l := range logs {
		if !l.MedicationTaken.IsPresent {
			continue
		}
		recorded++
		if l.MedicationTaken.Value {
			taken++
		}
	}
	if recorded == 0 {
		return 0
	}
	return float64(taken) / float64(recorded) * 100
}

func GoodDays(logs []DailyLog) int {
	count := 0
	for _, l := range logs {
		if l.MoodRating.IsPresent && l.MoodRating.Value >= GOOD_DAY_MOOD {
			count++
		}
	}
	return count
}

func ChallengingDays(logs []DailyLog) int {
	count := 0
	for _, l := range logs {
		if l.MoodRating.IsPresent && l.MoodRating.Value <= CHALLENGING_DAY_MOOD && l.MoodRating.Value > 0 {
			count++
		}
	}
	return count
}

// TopEmotions returns the most frequently checked emotions across the
// logs, most common first, ties broken alphabetically.
func TopEmotions(logs []DailyLog, limit int) []string {
	counts := make(map[string]int)
	for _, l := range logs {
		for _, emotion := range l.EmotionCheckboxes {
			counts[emotion]++
		}
	}
	emotions := make([]string, 0, len(counts))
	for emotion := range counts {
		emotions = append(emotions, emotion)
	}
	sort.Slice(emotions, func(i, j int) bool {
		if counts[emotions[i]] != counts[emotions[j]] {
			return counts[emotions[i]] > counts[emotions[j]]
		}
		return emotions[i] < emotions[j]
	})
	if len(emotions) > limit {
		emotions = emotions[:limit]
	}
	return emotions
}

// Streak counts consecutive days with a log, walking backwards from
// today. With allowMissingToday a not-yet-logged today does not break
// the chain.
func Streak(logs []DailyLog, now time.Time, allowMissingToday bool, maxDays int) int {
	days := make(map[time.Time]bool, len(logs))
	for _, l := range logs {
		days[Day(l.Date, now.Location())] = true
	}

	streak := 0
	checkDate := Day(now, now.Location())
	for i := 0; i < maxDays; i++ {
		if days[checkDate] {
			streak++
		} else if i > 0 || !allowMissingToday {
			break
		}
		checkDate = checkDate.AddDate(0, 0, -1)
	}
	return streak
}

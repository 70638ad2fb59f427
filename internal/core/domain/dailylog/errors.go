package dailylog

import "errors"

var (
	ErrDailyLogDoesNotExist = errors.New("daily log does not exist")
	ErrInvalidRating        = errors.New("rating must be between 1 and 10")
)

package medication

import "errors"

var (
	ErrMedicationDoesNotExist = errors.New("medication does not exist")
	ErrMedicationNameNotSet   = errors.New("medication name is required")
	ErrInvalidReminderTime    = errors.New("invalid reminder time")
)

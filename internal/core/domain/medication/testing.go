package medication

import (
	"context"
	"fmt"
	"mindlog/internal/core/domain/user"
	"sync"
)

type FakeRepository struct {
	lock        sync.Mutex
	nextID      int
	Medications map[ID]Medication

	CreateError error
	GetError    error
	ReadError   error
	UpdateError error
	DeleteError error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Medications: make(map[ID]Medication)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (Medication, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.CreateError != nil {
		return Medication{}, r.CreateError
	}
	r.nextID++
	m := Medication{
		ID:            ID(fmt.Sprintf("med-%d", r.nextID)),
		UserID:        input.UserID,
		Name:          input.Name,
		Dosage:        input.Dosage,
		Frequency:     input.Frequency,
		ReminderTimes: input.ReminderTimes,
		ReminderDate:  input.ReminderDate,
		IsActive:      input.IsActive,
		CreatedAt:     input.CreatedAt,
		UpdatedAt:     input.CreatedAt,
	}
	r.Medications[m.ID] = m
	return m, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (Medication, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetError != nil {
		return Medication{}, r.GetError
	}
	m, ok := r.Medications[id]
	if !ok {
		return Medication{}, ErrMedicationDoesNotExist
	}
	return m, nil
}

func (r *FakeRepository) Read(ctx context.Context, options ReadOptions) ([]Medication, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	medications := make([]Medication, 0, len(r.Medications))
	for _, m := range r.Medications {
		if options.UserIDEquals.IsPresent && m.UserID != options.UserIDEquals.Value {
			continue
		}
		if options.ActiveOnly && !m.IsActive {
			continue
		}
		medications = append(medications, m)
	}
	return medications, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (Medication, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.UpdateError != nil {
		return Medication{}, r.UpdateError
	}
	m, ok := r.Medications[input.ID]
	if !ok || m.UserID != input.UserID {
		return Medication{}, ErrMedicationDoesNotExist
	}
	if input.Name.IsPresent {
		m.Name = input.Name.Value
	}
	if input.Dosage.IsPresent {
		m.Dosage = input.Dosage.Value
	}
	if input.Frequency.IsPresent {
		m.Frequency = input.Frequency.Value
	}
	if input.ReminderTimes.IsPresent {
		m.ReminderTimes = input.ReminderTimes.Value
	}
	if input.ReminderDate.IsPresent {
		m.ReminderDate = input.ReminderDate.Value
	}
	if input.IsActive.IsPresent {
		m.IsActive = input.IsActive.Value
	}
	m.UpdatedAt = input.UpdatedAt
	r.Medications[m.ID] = m
	return m, nil
}

func (r *FakeRepository) Delete(ctx context.Context, id ID, userID user.ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.DeleteError != nil {
		return r.DeleteError
	}
	m, ok := r.Medications[id]
	if !ok || m.UserID != userID {
		return ErrMedicationDoesNotExist
	}
	delete(r.Medications, id)
	return nil
}

type FakeScheduler struct {
	lock         sync.Mutex
	WorkingSet   []Medication
	SetCalls     int
	Cancelled    []ID
	CancelledAll bool
	Snoozed      []ID
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) SetReminders(ms []Medication) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.WorkingSet = ms
	s.SetCalls++
}

func (s *FakeScheduler) Cancel(id ID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Cancelled = append(s.Cancelled, id)
}

func (s *FakeScheduler) CancelAll() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.CancelledAll = true
}

func (s *FakeScheduler) Snooze(id ID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Snoozed = append(s.Snoozed, id)
}

type FakeIntakeRepository struct {
	lock        sync.Mutex
	nextID      int
	Intakes     []Intake
	CreateError error
}

func NewFakeIntakeRepository() *FakeIntakeRepository {
	return &FakeIntakeRepository{}
}

func (r *FakeIntakeRepository) Create(ctx context.Context, input CreateIntakeInput) (Intake, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.CreateError != nil {
		return Intake{}, r.CreateError
	}
	r.nextID++
	intake := Intake{
		ID:           ID(fmt.Sprintf("intake-%d", r.nextID)),
		MedicationID: input.MedicationID,
		UserID:       input.UserID,
		TakenAt:      input.TakenAt,
	}
	r.Intakes = append(r.Intakes, intake)
	return intake, nil
}

func (r *FakeIntakeRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Intakes)
}

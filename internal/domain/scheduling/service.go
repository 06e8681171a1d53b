package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrBadTransition means a status change violated the appointment state
// machine.
var ErrBadTransition = errors.New("invalid appointment status transition")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil || a.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = 30
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Status != StatusPending && a.Status != StatusConfirmed {
		return fmt.Errorf("new appointments start as %q or %q", StatusPending, StatusConfirmed)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("unknown appointment status %q", a.Status)
	}
	if !CanTransition(existing.Status, a.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, existing.Status, a.Status)
	}
	a.PatientID = existing.PatientID
	return s.repo.Update(ctx, a)
}

// SetStatus moves an appointment through its state machine without touching
// any other field.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("unknown appointment status %q", status)
	}
	if !CanTransition(a.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, a.Status, status)
	}
	if a.Status == status {
		return a, nil
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// DayForDoctor lists a doctor's appointments for one calendar day.
func (s *Service) DayForDoctor(ctx context.Context, doctorID uuid.UUID, day time.Time, limit, offset int) ([]*Appointment, int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	params := map[string]string{
		"doctor_id": doctorID.String(),
		"from":      start.Format(time.RFC3339),
		"to":        start.AddDate(0, 0, 1).Format(time.RFC3339),
	}
	return s.repo.Search(ctx, params, limit, offset)
}

package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appointments[a.ID]; !ok {
		return errors.New("not found")
	}
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	var items []*Appointment
	for _, a := range m.appointments {
		if s, ok := params["status"]; ok && a.Status != s {
			continue
		}
		items = append(items, a)
	}
	return items, len(items), nil
}

func (m *mockRepo) DueForReminder(_ context.Context, from, to time.Time) ([]*Appointment, error) {
	var items []*Appointment
	for _, a := range m.appointments {
		if a.ReminderSentAt != nil {
			continue
		}
		if a.Status != StatusPending && a.Status != StatusConfirmed {
			continue
		}
		if a.ScheduledAt.Before(from) || !a.ScheduledAt.Before(to) {
			continue
		}
		cp := *a
		items = append(items, &cp)
	}
	return items, nil
}

func (m *mockRepo) MarkReminded(_ context.Context, id uuid.UUID, at time.Time) error {
	a, ok := m.appointments[id]
	if !ok {
		return errors.New("not found")
	}
	a.ReminderSentAt = &at
	return nil
}

func mustCreate(t *testing.T, svc *Service, scheduledAt time.Time) *Appointment {
	t.Helper()
	a := &Appointment{
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		ScheduledAt: scheduledAt,
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	return a
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMockRepo())
	a := mustCreate(t, svc, time.Now().Add(24*time.Hour))
	if a.Status != StatusPending {
		t.Errorf("status = %q, want pending", a.Status)
	}
	if a.DurationMinutes != 30 {
		t.Errorf("duration = %d, want default 30", a.DurationMinutes)
	}
}

func TestCreateRejectsTerminalStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		ScheduledAt: time.Now(),
		Status:      StatusCompleted,
	}
	if err := svc.Create(context.Background(), a); err == nil {
		t.Error("expected error creating an appointment as completed")
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusCheckedIn, StatusCompleted, true},
		{StatusCheckedIn, StatusNoShow, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusNoShow, true},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestSetStatusEnforcesStateMachine(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	a := mustCreate(t, svc, time.Now().Add(time.Hour))

	if _, err := svc.SetStatus(ctx, a.ID, StatusCompleted); !errors.Is(err, ErrBadTransition) {
		t.Errorf("pending->completed: err = %v, want ErrBadTransition", err)
	}

	for _, status := range []string{StatusConfirmed, StatusCheckedIn, StatusCompleted} {
		got, err := svc.SetStatus(ctx, a.ID, status)
		if err != nil {
			t.Fatalf("to %s: %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("status = %q, want %q", got.Status, status)
		}
	}

	if _, err := svc.SetStatus(ctx, a.ID, StatusPending); !errors.Is(err, ErrBadTransition) {
		t.Errorf("completed->pending: err = %v, want ErrBadTransition", err)
	}
}

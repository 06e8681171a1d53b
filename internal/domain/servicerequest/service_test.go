package servicerequest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	requests map[uuid.UUID]*ServiceRequest
}

func newMockRepo() *mockRepo {
	return &mockRepo{requests: make(map[uuid.UUID]*ServiceRequest)}
}

func (m *mockRepo) Create(_ context.Context, sr *ServiceRequest) error {
	sr.ID = uuid.New()
	cp := *sr
	m.requests[sr.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*ServiceRequest, error) {
	sr, ok := m.requests[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *sr
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, sr *ServiceRequest) error {
	if _, ok := m.requests[sr.ID]; !ok {
		return errors.New("not found")
	}
	cp := *sr
	m.requests[sr.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.requests, id)
	return nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*ServiceRequest, int, error) {
	var items []*ServiceRequest
	for _, sr := range m.requests {
		if s, ok := params["status"]; ok && sr.Status != s {
			continue
		}
		items = append(items, sr)
	}
	return items, len(items), nil
}

func mustCreate(t *testing.T, svc *Service) *ServiceRequest {
	t.Helper()
	sr := &ServiceRequest{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		ServiceID: uuid.New(),
	}
	if err := svc.Create(context.Background(), sr); err != nil {
		t.Fatalf("create: %v", err)
	}
	return sr
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMockRepo())
	sr := mustCreate(t, svc)
	if sr.Status != StatusRequested {
		t.Errorf("status = %q, want requested", sr.Status)
	}
	if sr.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", sr.Quantity)
	}
}

func TestLifecycle(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	sr := mustCreate(t, svc)

	if _, err := svc.SetStatus(ctx, sr.ID, StatusCompleted); !errors.Is(err, ErrBadTransition) {
		t.Errorf("requested->completed: err = %v, want ErrBadTransition", err)
	}

	for _, status := range []string{StatusInProgress, StatusCompleted} {
		got, err := svc.SetStatus(ctx, sr.ID, status)
		if err != nil {
			t.Fatalf("to %s: %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("status = %q, want %q", got.Status, status)
		}
	}

	if _, err := svc.SetStatus(ctx, sr.ID, StatusCancelled); !errors.Is(err, ErrBadTransition) {
		t.Errorf("completed->cancelled: err = %v, want ErrBadTransition", err)
	}
}

func TestCancellationFromEitherActiveState(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	a := mustCreate(t, svc)
	if _, err := svc.SetStatus(ctx, a.ID, StatusCancelled); err != nil {
		t.Errorf("requested->cancelled: %v", err)
	}

	b := mustCreate(t, svc)
	if _, err := svc.SetStatus(ctx, b.ID, StatusInProgress); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetStatus(ctx, b.ID, StatusCancelled); err != nil {
		t.Errorf("in-progress->cancelled: %v", err)
	}
}

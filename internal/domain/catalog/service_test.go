package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type mockMedicineRepo struct {
	medicines map[uuid.UUID]*Medicine
}

func (m *mockMedicineRepo) Create(_ context.Context, med *Medicine) error {
	med.ID = uuid.New()
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) GetByID(_ context.Context, id uuid.UUID) (*Medicine, error) {
	med, ok := m.medicines[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return med, nil
}

func (m *mockMedicineRepo) Update(_ context.Context, med *Medicine) error {
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.medicines, id)
	return nil
}

func (m *mockMedicineRepo) List(_ context.Context, name string, activeOnly bool, limit, offset int) ([]*Medicine, int, error) {
	var items []*Medicine
	for _, med := range m.medicines {
		if name != "" && !strings.Contains(strings.ToLower(med.Name), strings.ToLower(name)) {
			continue
		}
		if activeOnly && !med.Active {
			continue
		}
		items = append(items, med)
	}
	return items, len(items), nil
}

type mockServiceRepo struct {
	services map[uuid.UUID]*ClinicService
}

func (m *mockServiceRepo) Create(_ context.Context, s *ClinicService) error {
	s.ID = uuid.New()
	m.services[s.ID] = s
	return nil
}

func (m *mockServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*ClinicService, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (m *mockServiceRepo) Update(_ context.Context, s *ClinicService) error {
	m.services[s.ID] = s
	return nil
}

func (m *mockServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.services, id)
	return nil
}

func (m *mockServiceRepo) List(_ context.Context, name string, activeOnly bool, limit, offset int) ([]*ClinicService, int, error) {
	var items []*ClinicService
	for _, s := range m.services {
		items = append(items, s)
	}
	return items, len(items), nil
}

func newTestService() *Service {
	return NewService(
		&mockMedicineRepo{medicines: make(map[uuid.UUID]*Medicine)},
		&mockServiceRepo{services: make(map[uuid.UUID]*ClinicService)},
	)
}

func TestCreateMedicineValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.CreateMedicine(ctx, &Medicine{Unit: "ampoule"}); err == nil {
		t.Error("expected error for nameless medicine")
	}
	if err := svc.CreateMedicine(ctx, &Medicine{Name: "Gonal-F", UnitPrice: -1}); err == nil {
		t.Error("expected error for negative price")
	}
	m := &Medicine{Name: "Gonal-F", Unit: "ampoule", UnitPrice: 120000, Active: true}
	if err := svc.CreateMedicine(ctx, m); err != nil {
		t.Fatal(err)
	}
	if m.ID == uuid.Nil {
		t.Error("id not assigned")
	}
}

func TestCreateClinicServiceValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.CreateClinicService(ctx, &ClinicService{Name: "Ultrasound"}); err == nil {
		t.Error("expected error for missing code")
	}
	if err := svc.CreateClinicService(ctx, &ClinicService{Code: "US01", Name: "Ultrasound", Price: 350000, Active: true}); err != nil {
		t.Fatal(err)
	}
}

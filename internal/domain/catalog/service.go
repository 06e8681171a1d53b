package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	medicines MedicineRepository
	services  ServiceRepository
}

func NewService(medicines MedicineRepository, services ServiceRepository) *Service {
	return &Service{medicines: medicines, services: services}
}

// -- Medicine --

func (s *Service) CreateMedicine(ctx context.Context, m *Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("medicine name is required")
	}
	if m.UnitPrice < 0 {
		return fmt.Errorf("unit_price cannot be negative")
	}
	return s.medicines.Create(ctx, m)
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

func (s *Service) UpdateMedicine(ctx context.Context, m *Medicine) error {
	if m.UnitPrice < 0 {
		return fmt.Errorf("unit_price cannot be negative")
	}
	return s.medicines.Update(ctx, m)
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return s.medicines.Delete(ctx, id)
}

func (s *Service) ListMedicines(ctx context.Context, name string, activeOnly bool, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.List(ctx, name, activeOnly, limit, offset)
}

// -- Clinic Service --

func (s *Service) CreateClinicService(ctx context.Context, cs *ClinicService) error {
	if cs.Name == "" || cs.Code == "" {
		return fmt.Errorf("service code and name are required")
	}
	if cs.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return s.services.Create(ctx, cs)
}

func (s *Service) GetClinicService(ctx context.Context, id uuid.UUID) (*ClinicService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateClinicService(ctx context.Context, cs *ClinicService) error {
	if cs.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return s.services.Update(ctx, cs)
}

func (s *Service) DeleteClinicService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

func (s *Service) ListClinicServices(ctx context.Context, name string, activeOnly bool, limit, offset int) ([]*ClinicService, int, error) {
	return s.services.List(ctx, name, activeOnly, limit, offset)
}

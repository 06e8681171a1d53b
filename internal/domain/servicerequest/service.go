package servicerequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrBadTransition means a status change violated the request state machine.
var ErrBadTransition = errors.New("invalid service request status transition")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, sr *ServiceRequest) error {
	if sr.PatientID == uuid.Nil || sr.DoctorID == uuid.Nil || sr.ServiceID == uuid.Nil {
		return fmt.Errorf("patient_id, doctor_id and service_id are required")
	}
	if sr.Quantity <= 0 {
		sr.Quantity = 1
	}
	if sr.Status == "" {
		sr.Status = StatusRequested
	}
	if sr.Status != StatusRequested {
		return fmt.Errorf("new service requests start as %q", StatusRequested)
	}
	return s.repo.Create(ctx, sr)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, sr *ServiceRequest) error {
	existing, err := s.repo.GetByID(ctx, sr.ID)
	if err != nil {
		return err
	}
	if !ValidStatus(sr.Status) {
		return fmt.Errorf("unknown service request status %q", sr.Status)
	}
	if !CanTransition(existing.Status, sr.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, existing.Status, sr.Status)
	}
	sr.PatientID = existing.PatientID
	return s.repo.Update(ctx, sr)
}

// SetStatus moves a request through its state machine.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("unknown service request status %q", status)
	}
	if !CanTransition(sr.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, sr.Status, status)
	}
	if sr.Status == status {
		return sr, nil
	}
	sr.Status = status
	if err := s.repo.Update(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*ServiceRequest, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

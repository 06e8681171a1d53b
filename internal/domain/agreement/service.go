package agreement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Agreement) error {
	if a.PatientID == uuid.Nil || a.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Agreement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Agreement) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	// Signatures only move through Sign; edits cannot grant or revoke them.
	a.DoctorSigned = existing.DoctorSigned
	a.PatientSigned = existing.PatientSigned
	a.DoctorSignedAt = existing.DoctorSignedAt
	a.PatientSignedAt = existing.PatientSignedAt
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Agreement, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Sign records one party's signature. Signing an already-signed agreement
// as the same party succeeds without changing anything, so retried requests
// are harmless.
func (s *Service) Sign(ctx context.Context, id uuid.UUID, signer string) (*Agreement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch signer {
	case SignerDoctor:
		if a.DoctorSigned {
			return a, nil
		}
		a.DoctorSigned = true
		a.DoctorSignedAt = &now
	case SignerPatient:
		if a.PatientSigned {
			return a, nil
		}
		a.PatientSigned = true
		a.PatientSignedAt = &now
	default:
		return nil, fmt.Errorf("signer must be %q or %q", SignerDoctor, SignerPatient)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// FullySigned satisfies treatment.AgreementChecker.
func (s *Service) FullySigned(ctx context.Context, id uuid.UUID) (bool, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return a.FullySigned(), nil
}

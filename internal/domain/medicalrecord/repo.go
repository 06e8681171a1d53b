package medicalrecord

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifespring/clinic/internal/domain/servicerequest"
)

type RecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	Update(ctx context.Context, r *MedicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*MedicalRecord, int, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Prescription, error)
}

// RequestPlacer places service requests during a consultation. Satisfied by
// the service request service so the whole consultation shares one
// transaction through the context.
type RequestPlacer interface {
	Create(ctx context.Context, sr *servicerequest.ServiceRequest) error
}

// TxFunc runs fn atomically. Wired to db.InTx in production.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

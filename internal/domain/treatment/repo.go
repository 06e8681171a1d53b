package treatment

import (
	"context"

	"github.com/google/uuid"
)

// CycleRepository persists treatment cycles.
type CycleRepository interface {
	Create(ctx context.Context, c *TreatmentCycle) error
	GetByID(ctx context.Context, id uuid.UUID) (*TreatmentCycle, error)
	Update(ctx context.Context, c *TreatmentCycle) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*TreatmentCycle, int, error)
}

// AgreementChecker reports whether a treatment agreement carries both
// required signatures. Satisfied by the agreement service; kept as an
// interface so cycle creation does not depend on that package.
type AgreementChecker interface {
	FullySigned(ctx context.Context, agreementID uuid.UUID) (bool, error)
}

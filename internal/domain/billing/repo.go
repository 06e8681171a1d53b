package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByGatewayRef(ctx context.Context, ref string) (*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Transaction, int, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Transaction, error)
}

type CryoContractRepository interface {
	Create(ctx context.Context, c *CryoContract) error
	GetByID(ctx context.Context, id uuid.UUID) (*CryoContract, error)
	Update(ctx context.Context, c *CryoContract) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CryoContract, int, error)
}

package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrIllegalTransition means a status change tried to move a
	// transaction out of a terminal status, or into a different terminal
	// status than the one it already has.
	ErrIllegalTransition = errors.New("illegal transaction status transition")
)

type Service struct {
	transactions TransactionRepository
	contracts    CryoContractRepository
	log          zerolog.Logger
}

func NewService(transactions TransactionRepository, contracts CryoContractRepository, log zerolog.Logger) *Service {
	return &Service{
		transactions: transactions,
		contracts:    contracts,
		log:          log.With().Str("component", "billing").Logger(),
	}
}

// -- Transactions --

// CreateTransaction records a new charge or refund. All transactions start
// pending; the gateway callback settles them.
func (s *Service) CreateTransaction(ctx context.Context, t *Transaction) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !ValidType(t.Type) {
		return fmt.Errorf("transaction type must be %q or %q", TypePayment, TypeRefund)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if t.Currency == "" {
		t.Currency = "VND"
	}
	if t.RelatedEntityType != nil && !ValidEntity(*t.RelatedEntityType) {
		return fmt.Errorf("unknown related entity type %q", *t.RelatedEntityType)
	}
	if t.Status != "" && t.Status != StatusPending {
		return fmt.Errorf("new transactions start as %q", StatusPending)
	}
	t.Status = StatusPending
	return s.transactions.Create(ctx, t)
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

func (s *Service) SearchTransactions(ctx context.Context, params map[string]string, limit, offset int) ([]*Transaction, int, error) {
	return s.transactions.Search(ctx, params, limit, offset)
}

// GatewayCallback is the settlement notice sent by the payment gateway.
type GatewayCallback struct {
	TransactionID uuid.UUID  `json:"transaction_id"`
	Status        string     `json:"status"`
	GatewayRef    string     `json:"gateway_ref"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// SettleTransaction applies a gateway callback. A pending transaction moves
// to the reported terminal status (completed, failed or cancelled).
// Re-delivery of the same terminal status is a no-op so gateway retries stay
// safe; any other move out of a terminal status is rejected.
func (s *Service) SettleTransaction(ctx context.Context, cb *GatewayCallback) (*Transaction, error) {
	if !Terminal(cb.Status) {
		return nil, fmt.Errorf("gateway may only settle to %q, %q or %q",
			StatusCompleted, StatusFailed, StatusCancelled)
	}

	t, err := s.transactions.GetByID(ctx, cb.TransactionID)
	if err != nil {
		return nil, err
	}

	if Terminal(t.Status) {
		if t.Status == cb.Status {
			s.log.Debug().Str("transaction_id", t.ID.String()).Msg("duplicate gateway callback ignored")
			return t, nil
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.Status, cb.Status)
	}

	t.Status = cb.Status
	if cb.GatewayRef != "" {
		t.GatewayRef = &cb.GatewayRef
	}
	if cb.Status == StatusCompleted {
		paidAt := time.Now().UTC()
		if cb.PaidAt != nil {
			paidAt = *cb.PaidAt
		}
		t.PaidAt = &paidAt
	}
	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("transaction_id", t.ID.String()).
		Str("status", t.Status).
		Msg("transaction settled")
	return t, nil
}

// CancelTransaction voids a pending transaction. Cancelling twice is a
// no-op; cancelling a settled transaction is rejected.
func (s *Service) CancelTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == StatusCancelled {
		return t, nil
	}
	if Terminal(t.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.Status, StatusCancelled)
	}
	t.Status = StatusCancelled
	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// -- Cryo contracts --

func (s *Service) CreateContract(ctx context.Context, c *CryoContract) error {
	if c.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if c.ContractNo == "" || c.SpecimenType == "" {
		return fmt.Errorf("contract_no and specimen_type are required")
	}
	if !c.EndDate.After(c.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	if c.AnnualFee < 0 {
		return fmt.Errorf("annual_fee cannot be negative")
	}
	if c.Status == "" {
		c.Status = ContractActive
	}
	return s.contracts.Create(ctx, c)
}

func (s *Service) GetContract(ctx context.Context, id uuid.UUID) (*CryoContract, error) {
	return s.contracts.GetByID(ctx, id)
}

func (s *Service) UpdateContract(ctx context.Context, c *CryoContract) error {
	existing, err := s.contracts.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing.Status == ContractTerminated && c.Status != ContractTerminated {
		return fmt.Errorf("terminated contracts cannot be reactivated")
	}
	c.PatientID = existing.PatientID
	c.ContractNo = existing.ContractNo
	return s.contracts.Update(ctx, c)
}

func (s *Service) DeleteContract(ctx context.Context, id uuid.UUID) error {
	return s.contracts.Delete(ctx, id)
}

func (s *Service) ContractsForPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CryoContract, int, error) {
	return s.contracts.ListByPatient(ctx, patientID, limit, offset)
}

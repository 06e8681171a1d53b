package billing

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types.
const (
	TypePayment = "payment"
	TypeRefund  = "refund"
)

// Transaction statuses. Pending is the only non-terminal status; the move
// to a terminal status happens through the payment gateway callback or an
// explicit cancellation.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Entities a transaction can pay for.
const (
	EntityServiceRequest = "service_request"
	EntityAppointment    = "appointment"
	EntityCryoContract   = "cryo_contract"
)

// ValidType reports whether t names a known transaction type.
func ValidType(t string) bool {
	return t == TypePayment || t == TypeRefund
}

// ValidStatus reports whether s names a known transaction status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is a final transaction status.
func Terminal(s string) bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// ValidEntity reports whether e names a payable entity kind.
func ValidEntity(e string) bool {
	switch e {
	case EntityServiceRequest, EntityAppointment, EntityCryoContract:
		return true
	}
	return false
}

// Transaction maps to the transaction table. Amounts are in the currency's
// smallest unit.
type Transaction struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PatientID         uuid.UUID  `db:"patient_id" json:"patient_id"`
	Type              string     `db:"type" json:"type"`
	Status            string     `db:"status" json:"status"`
	Amount            int64      `db:"amount" json:"amount"`
	Currency          string     `db:"currency" json:"currency"`
	RelatedEntityType *string    `db:"related_entity_type" json:"related_entity_type,omitempty"`
	RelatedEntityID   *uuid.UUID `db:"related_entity_id" json:"related_entity_id,omitempty"`
	GatewayRef        *string    `db:"gateway_ref" json:"gateway_ref,omitempty"`
	Description       *string    `db:"description" json:"description,omitempty"`
	PaidAt            *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// Cryo contract statuses.
const (
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

// CryoContract is a cryopreservation storage agreement billed annually.
type CryoContract struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	ContractNo   string    `db:"contract_no" json:"contract_no"`
	SpecimenType string    `db:"specimen_type" json:"specimen_type"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	AnnualFee    int64     `db:"annual_fee" json:"annual_fee"`
	Status       string    `db:"status" json:"status"`
	Note         *string   `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

package billing

import (
	"fmt"
	"strings"
	"time"
)

// ClinicInfo is the issuer block printed on every invoice.
type ClinicInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
}

// Invoice is the structured billing document for one completed transaction.
type Invoice struct {
	Number        string     `json:"number"`
	IssuedAt      time.Time  `json:"issued_at"`
	Clinic        ClinicInfo `json:"clinic"`
	PatientID     string     `json:"patient_id"`
	Type          string     `json:"type"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Description   string     `json:"description"`
	RelatedEntity string     `json:"related_entity,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// BuildInvoice renders an invoice for a completed transaction. Only
// completed transactions are invoiceable.
func BuildInvoice(t *Transaction, clinic ClinicInfo) (*Invoice, error) {
	if t.Status != StatusCompleted {
		return nil, fmt.Errorf("transaction %s is %s, only completed transactions can be invoiced", t.ID, t.Status)
	}

	inv := &Invoice{
		Number:    invoiceNumber(t),
		IssuedAt:  time.Now().UTC(),
		Clinic:    clinic,
		PatientID: t.PatientID.String(),
		Type:      t.Type,
		Amount:    t.Amount,
		Currency:  t.Currency,
		PaidAt:    t.PaidAt,
	}
	if t.Description != nil {
		inv.Description = *t.Description
	}
	if t.RelatedEntityType != nil && t.RelatedEntityID != nil {
		inv.RelatedEntity = fmt.Sprintf("%s/%s", *t.RelatedEntityType, t.RelatedEntityID)
	}
	return inv, nil
}

// invoiceNumber derives a stable human-readable number from the transaction
// id, so re-fetching an invoice never changes its number.
func invoiceNumber(t *Transaction) string {
	short := strings.ToUpper(strings.ReplaceAll(t.ID.String(), "-", "")[:12])
	return fmt.Sprintf("INV-%s", short)
}

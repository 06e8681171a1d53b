package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is a prescribable drug in the clinic formulary.
type Medicine struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Unit      string    `db:"unit" json:"unit"`
	UnitPrice int64     `db:"unit_price" json:"unit_price"`
	Note      *string   `db:"note" json:"note,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClinicService is an orderable procedure or lab test. Prices are stored in
// the currency's smallest unit.
type ClinicService struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Price     int64     `db:"price" json:"price"`
	Note      *string   `db:"note" json:"note,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	MRN           string     `db:"mrn" json:"mrn"`
	FirstName     string     `db:"first_name" json:"first_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	FullName      *string    `db:"full_name" json:"full_name,omitempty"`
	Email         *string    `db:"email" json:"email,omitempty"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth   *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	MaritalStatus *string    `db:"marital_status" json:"marital_status,omitempty"`
	PartnerName   *string    `db:"partner_name" json:"partner_name,omitempty"`
	Address       *string    `db:"address" json:"address,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName resolves the name shown on schedules and invoices. The
// precedence is fixed: explicit full name, then assembled given/family
// name, then the email local part, then a placeholder. Earlier sources
// win even when later ones are also present.
func (p *Patient) DisplayName() string {
	if p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
		return strings.TrimSpace(*p.FullName)
	}
	assembled := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if assembled != "" {
		return assembled
	}
	if p.Email != nil {
		if at := strings.IndexByte(*p.Email, '@'); at > 0 {
			return (*p.Email)[:at]
		}
	}
	return "Unknown patient"
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	LicenseNo *string   `db:"license_no" json:"license_no,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

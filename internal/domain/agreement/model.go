package agreement

import (
	"time"

	"github.com/google/uuid"
)

// Signer roles accepted by the signing endpoint.
const (
	SignerDoctor  = "doctor"
	SignerPatient = "patient"
)

// Agreement is a treatment consent document. A treatment cycle can only be
// created once both parties have signed.
type Agreement struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	TreatmentType   string     `db:"treatment_type" json:"treatment_type"`
	Title           string     `db:"title" json:"title"`
	Content         string     `db:"content" json:"content"`
	DoctorSigned    bool       `db:"doctor_signed" json:"doctor_signed"`
	PatientSigned   bool       `db:"patient_signed" json:"patient_signed"`
	DoctorSignedAt  *time.Time `db:"doctor_signed_at" json:"doctor_signed_at,omitempty"`
	PatientSignedAt *time.Time `db:"patient_signed_at" json:"patient_signed_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// FullySigned reports whether both required signatures are present.
func (a *Agreement) FullySigned() bool {
	return a.DoctorSigned && a.PatientSigned
}

package medicalrecord

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is one consultation's chart entry.
type MedicalRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	CycleID       *uuid.UUID `db:"cycle_id" json:"cycle_id,omitempty"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	VisitDate     time.Time  `db:"visit_date" json:"visit_date"`
	Symptoms      *string    `db:"symptoms" json:"symptoms,omitempty"`
	Diagnosis     string     `db:"diagnosis" json:"diagnosis"`
	Assessment    *string    `db:"assessment" json:"assessment,omitempty"`
	Plan          *string    `db:"plan" json:"plan,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Prescription groups the medicines ordered during one consultation.
type Prescription struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	RecordID  uuid.UUID          `db:"record_id" json:"record_id"`
	PatientID uuid.UUID          `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID          `db:"doctor_id" json:"doctor_id"`
	Note      *string            `db:"note" json:"note,omitempty"`
	Items     []PrescriptionItem `json:"items"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// PrescriptionItem is one medicine line on a prescription.
type PrescriptionItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescription_id"`
	MedicineID     uuid.UUID `db:"medicine_id" json:"medicine_id"`
	Dosage         string    `db:"dosage" json:"dosage"`
	Quantity       int       `db:"quantity" json:"quantity"`
	Instructions   *string   `db:"instructions" json:"instructions,omitempty"`
}

package treatment

import (
	"time"

	"github.com/google/uuid"
)

// Cycle statuses.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var validCycleStatuses = map[string]bool{
	StatusPlanned: true, StatusInProgress: true,
	StatusCompleted: true, StatusCancelled: true,
}

// TreatmentCycle maps to the treatment_cycle table: one patient's pass
// through a protocol's phases.
type TreatmentCycle struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	AgreementID    *uuid.UUID `db:"agreement_id" json:"agreement_id,omitempty"`
	TreatmentType  string     `db:"treatment_type" json:"treatment_type"`
	CurrentStep    *string    `db:"current_step" json:"current_step,omitempty"`
	CompletedSteps []string   `db:"completed_steps" json:"completed_steps"`
	Status         string     `db:"status" json:"status"`
	StartDate      *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate        *time.Time `db:"end_date" json:"end_date,omitempty"`
	Note           *string    `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

package servicerequest

import (
	"time"

	"github.com/google/uuid"
)

// Service request statuses.
const (
	StatusRequested  = "requested"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var allowedTransitions = map[string][]string{
	StatusRequested:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a request may move between two statuses.
// Completed and cancelled are terminal; no-op transitions are allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s names a known request status.
func ValidStatus(s string) bool {
	switch s {
	case StatusRequested, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ServiceRequest is an order for a catalog service placed for a patient,
// optionally tied to a treatment cycle.
type ServiceRequest struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	CycleID   *uuid.UUID `db:"cycle_id" json:"cycle_id,omitempty"`
	ServiceID uuid.UUID  `db:"service_id" json:"service_id"`
	Quantity  int        `db:"quantity" json:"quantity"`
	Status    string     `db:"status" json:"status"`
	Note      *string    `db:"note" json:"note,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

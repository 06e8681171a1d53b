package medicalrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifespring/clinic/internal/domain/servicerequest"
)

type Service struct {
	records       RecordRepository
	prescriptions PrescriptionRepository
	requests      RequestPlacer
	inTx          TxFunc
}

func NewService(records RecordRepository, prescriptions PrescriptionRepository, requests RequestPlacer, inTx TxFunc) *Service {
	return &Service{records: records, prescriptions: prescriptions, requests: requests, inTx: inTx}
}

func (s *Service) Create(ctx context.Context, r *MedicalRecord) error {
	if r.PatientID == uuid.Nil || r.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if r.Diagnosis == "" {
		return fmt.Errorf("diagnosis is required")
	}
	if r.VisitDate.IsZero() {
		r.VisitDate = time.Now().UTC()
	}
	return s.records.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, r *MedicalRecord) error {
	existing, err := s.records.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	r.PatientID = existing.PatientID
	return s.records.Update(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.records.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.Search(ctx, params, limit, offset)
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) PrescriptionsForRecord(ctx context.Context, recordID uuid.UUID) ([]*Prescription, error) {
	return s.prescriptions.ListByRecord(ctx, recordID)
}

// ServiceOrder is one catalog service ordered while completing a
// consultation.
type ServiceOrder struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
	Note      *string   `json:"note,omitempty"`
}

// ConsultationInput is everything a doctor submits when closing a visit.
type ConsultationInput struct {
	Record        MedicalRecord      `json:"record"`
	Prescriptions []PrescriptionItem `json:"prescriptions"`
	Orders        []ServiceOrder     `json:"orders"`
}

// ConsultationResult reports what CompleteConsultation persisted.
type ConsultationResult struct {
	Record       *MedicalRecord `json:"record"`
	Prescription *Prescription  `json:"prescription,omitempty"`
	RequestIDs   []uuid.UUID    `json:"request_ids"`
}

// CompleteConsultation writes the chart entry, its prescription and any
// ordered services in one transaction. Any failure rolls the whole visit
// back, so a consultation is never half-recorded.
func (s *Service) CompleteConsultation(ctx context.Context, in *ConsultationInput) (*ConsultationResult, error) {
	if in.Record.PatientID == uuid.Nil || in.Record.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("patient_id and doctor_id are required")
	}
	if in.Record.Diagnosis == "" {
		return nil, fmt.Errorf("diagnosis is required")
	}
	if in.Record.VisitDate.IsZero() {
		in.Record.VisitDate = time.Now().UTC()
	}

	var result ConsultationResult
	err := s.inTx(ctx, func(ctx context.Context) error {
		record := in.Record
		if err := s.records.Create(ctx, &record); err != nil {
			return fmt.Errorf("create record: %w", err)
		}
		result.Record = &record

		if len(in.Prescriptions) > 0 {
			p := &Prescription{
				RecordID:  record.ID,
				PatientID: record.PatientID,
				DoctorID:  record.DoctorID,
				Items:     in.Prescriptions,
			}
			if err := s.prescriptions.Create(ctx, p); err != nil {
				return fmt.Errorf("create prescription: %w", err)
			}
			result.Prescription = p
		}

		for _, order := range in.Orders {
			sr := &servicerequest.ServiceRequest{
				PatientID: record.PatientID,
				DoctorID:  record.DoctorID,
				CycleID:   record.CycleID,
				ServiceID: order.ServiceID,
				Quantity:  order.Quantity,
				Note:      order.Note,
			}
			if err := s.requests.Create(ctx, sr); err != nil {
				return fmt.Errorf("create service request: %w", err)
			}
			result.RequestIDs = append(result.RequestIDs, sr.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

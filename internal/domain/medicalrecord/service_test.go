package medicalrecord

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/lifespring/clinic/internal/domain/servicerequest"
)

// txRecorder mimics db.InTx: it runs fn and, on error, discards everything
// written during the callback.
type txRecorder struct {
	records       *mockRecordRepo
	prescriptions *mockPrescriptionRepo
	requests      *mockRequestPlacer
	rollbacks     int
}

func (tx *txRecorder) run(ctx context.Context, fn func(ctx context.Context) error) error {
	recSnap := tx.records.snapshot()
	presSnap := tx.prescriptions.snapshot()
	reqSnap := tx.requests.snapshot()
	if err := fn(ctx); err != nil {
		tx.records.restore(recSnap)
		tx.prescriptions.restore(presSnap)
		tx.requests.restore(reqSnap)
		tx.rollbacks++
		return err
	}
	return nil
}

type mockRecordRepo struct {
	records map[uuid.UUID]*MedicalRecord
	failing bool
}

func (m *mockRecordRepo) snapshot() int { return len(m.records) }
func (m *mockRecordRepo) restore(n int) {
	if len(m.records) > n {
		m.records = make(map[uuid.UUID]*MedicalRecord)
	}
}

func (m *mockRecordRepo) Create(_ context.Context, r *MedicalRecord) error {
	if m.failing {
		return errors.New("record insert failed")
	}
	r.ID = uuid.New()
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*MedicalRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *r
	return &cp, nil
}

func (m *mockRecordRepo) Update(_ context.Context, r *MedicalRecord) error {
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRecordRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*MedicalRecord, int, error) {
	var items []*MedicalRecord
	for _, r := range m.records {
		items = append(items, r)
	}
	return items, len(items), nil
}

type mockPrescriptionRepo struct {
	prescriptions map[uuid.UUID]*Prescription
	failing       bool
}

func (m *mockPrescriptionRepo) snapshot() int { return len(m.prescriptions) }
func (m *mockPrescriptionRepo) restore(n int) {
	if len(m.prescriptions) > n {
		m.prescriptions = make(map[uuid.UUID]*Prescription)
	}
}

func (m *mockPrescriptionRepo) Create(_ context.Context, p *Prescription) error {
	if m.failing {
		return errors.New("prescription insert failed")
	}
	p.ID = uuid.New()
	for i := range p.Items {
		p.Items[i].ID = uuid.New()
		p.Items[i].PrescriptionID = p.ID
	}
	cp := *p
	m.prescriptions[p.ID] = &cp
	return nil
}

func (m *mockPrescriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.prescriptions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (m *mockPrescriptionRepo) ListByRecord(_ context.Context, recordID uuid.UUID) ([]*Prescription, error) {
	var items []*Prescription
	for _, p := range m.prescriptions {
		if p.RecordID == recordID {
			items = append(items, p)
		}
	}
	return items, nil
}

type mockRequestPlacer struct {
	placed  []*servicerequest.ServiceRequest
	failing bool
}

func (m *mockRequestPlacer) snapshot() int { return len(m.placed) }
func (m *mockRequestPlacer) restore(n int) { m.placed = m.placed[:n] }

func (m *mockRequestPlacer) Create(_ context.Context, sr *servicerequest.ServiceRequest) error {
	if m.failing {
		return errors.New("request insert failed")
	}
	sr.ID = uuid.New()
	m.placed = append(m.placed, sr)
	return nil
}

func newTestService() (*Service, *mockRecordRepo, *mockPrescriptionRepo, *mockRequestPlacer, *txRecorder) {
	records := &mockRecordRepo{records: make(map[uuid.UUID]*MedicalRecord)}
	prescriptions := &mockPrescriptionRepo{prescriptions: make(map[uuid.UUID]*Prescription)}
	requests := &mockRequestPlacer{}
	tx := &txRecorder{records: records, prescriptions: prescriptions, requests: requests}
	svc := NewService(records, prescriptions, requests, tx.run)
	return svc, records, prescriptions, requests, tx
}

func validInput() *ConsultationInput {
	return &ConsultationInput{
		Record: MedicalRecord{
			PatientID: uuid.New(),
			DoctorID:  uuid.New(),
			Diagnosis: "Unexplained infertility",
		},
		Prescriptions: []PrescriptionItem{
			{MedicineID: uuid.New(), Dosage: "150 IU daily", Quantity: 10},
		},
		Orders: []ServiceOrder{
			{ServiceID: uuid.New(), Quantity: 1},
			{ServiceID: uuid.New(), Quantity: 2},
		},
	}
}

func TestCompleteConsultationPersistsEverything(t *testing.T) {
	svc, records, prescriptions, requests, _ := newTestService()

	result, err := svc.CompleteConsultation(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	if result.Record == nil || result.Record.ID == uuid.Nil {
		t.Fatal("record not created")
	}
	if len(records.records) != 1 {
		t.Errorf("stored %d records, want 1", len(records.records))
	}
	if result.Prescription == nil || len(prescriptions.prescriptions) != 1 {
		t.Error("prescription not created")
	}
	if result.Prescription.RecordID != result.Record.ID {
		t.Error("prescription not linked to record")
	}
	if len(result.RequestIDs) != 2 || len(requests.placed) != 2 {
		t.Errorf("placed %d requests, want 2", len(requests.placed))
	}
	for _, sr := range requests.placed {
		if sr.PatientID != result.Record.PatientID {
			t.Error("service request carries wrong patient")
		}
	}
}

func TestCompleteConsultationRollsBackOnFailure(t *testing.T) {
	svc, records, prescriptions, requests, tx := newTestService()
	requests.failing = true

	_, err := svc.CompleteConsultation(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected error from failing request placer")
	}
	if tx.rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", tx.rollbacks)
	}
	if len(records.records) != 0 || len(prescriptions.prescriptions) != 0 || len(requests.placed) != 0 {
		t.Error("partial consultation survived a rollback")
	}
}

func TestCompleteConsultationWithoutPrescription(t *testing.T) {
	svc, _, prescriptions, _, _ := newTestService()

	in := validInput()
	in.Prescriptions = nil
	result, err := svc.CompleteConsultation(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if result.Prescription != nil || len(prescriptions.prescriptions) != 0 {
		t.Error("prescription created for a visit with no medicines")
	}
}

func TestCompleteConsultationValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	in := validInput()
	in.Record.Diagnosis = ""
	if _, err := svc.CompleteConsultation(context.Background(), in); err == nil {
		t.Error("expected error for missing diagnosis")
	}
}

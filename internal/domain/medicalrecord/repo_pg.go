package medicalrecord

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifespring/clinic/internal/platform/db"
)

// =========== Medical Record Repository ===========

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository { return &recordRepoPG{pool: pool} }

func (r *recordRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const recordCols = `id, patient_id, doctor_id, cycle_id, appointment_id, visit_date,
	symptoms, diagnosis, assessment, plan, note, created_at, updated_at`

func (r *recordRepoPG) scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var m MedicalRecord
	err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.CycleID, &m.AppointmentID, &m.VisitDate,
		&m.Symptoms, &m.Diagnosis, &m.Assessment, &m.Plan, &m.Note, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *recordRepoPG) Create(ctx context.Context, m *MedicalRecord) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medical_record (id, patient_id, doctor_id, cycle_id, appointment_id,
			visit_date, symptoms, diagnosis, assessment, plan, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		m.ID, m.PatientID, m.DoctorID, m.CycleID, m.AppointmentID,
		m.VisitDate, m.Symptoms, m.Diagnosis, m.Assessment, m.Plan, m.Note)
	return err
}

func (r *recordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx, `SELECT `+recordCols+` FROM medical_record WHERE id = $1`, id))
}

func (r *recordRepoPG) Update(ctx context.Context, m *MedicalRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_record SET cycle_id=$2, appointment_id=$3, visit_date=$4, symptoms=$5,
			diagnosis=$6, assessment=$7, plan=$8, note=$9, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.CycleID, m.AppointmentID, m.VisitDate, m.Symptoms,
		m.Diagnosis, m.Assessment, m.Plan, m.Note)
	return err
}

func (r *recordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medical_record WHERE id = $1`, id)
	return err
}

func (r *recordRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*MedicalRecord, int, error) {
	query := `SELECT ` + recordCols + ` FROM medical_record WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM medical_record WHERE 1=1`
	var args []interface{}
	idx := 1

	addFilter := func(cond string, val interface{}) {
		query += cond
		countQuery += cond
		args = append(args, val)
		idx++
	}

	if p, ok := params["patient_id"]; ok {
		addFilter(fmt.Sprintf(` AND patient_id = $%d`, idx), p)
	}
	if p, ok := params["doctor_id"]; ok {
		addFilter(fmt.Sprintf(` AND doctor_id = $%d`, idx), p)
	}
	if p, ok := params["cycle_id"]; ok {
		addFilter(fmt.Sprintf(` AND cycle_id = $%d`, idx), p)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY visit_date DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		m, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

// =========== Prescription Repository ===========

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription (id, record_id, patient_id, doctor_id, note)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.RecordID, p.PatientID, p.DoctorID, p.Note)
	if err != nil {
		return err
	}
	for i := range p.Items {
		item := &p.Items[i]
		item.ID = uuid.New()
		item.PrescriptionID = p.ID
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO prescription_item (id, prescription_id, medicine_id, dosage, quantity, instructions)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, item.PrescriptionID, item.MedicineID, item.Dosage, item.Quantity, item.Instructions)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	var p Prescription
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, record_id, patient_id, doctor_id, note, created_at
		FROM prescription WHERE id = $1`, id).
		Scan(&p.ID, &p.RecordID, &p.PatientID, &p.DoctorID, &p.Note, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prescriptionRepoPG) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, record_id, patient_id, doctor_id, note, created_at
		FROM prescription WHERE record_id = $1 ORDER BY created_at`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.RecordID, &p.PatientID, &p.DoctorID, &p.Note, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	for _, p := range items {
		if err := r.loadItems(ctx, p); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *prescriptionRepoPG) loadItems(ctx context.Context, p *Prescription) error {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, prescription_id, medicine_id, dosage, quantity, instructions
		FROM prescription_item WHERE prescription_id = $1`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item PrescriptionItem
		if err := rows.Scan(&item.ID, &item.PrescriptionID, &item.MedicineID, &item.Dosage, &item.Quantity, &item.Instructions); err != nil {
			return err
		}
		p.Items = append(p.Items, item)
	}
	return nil
}

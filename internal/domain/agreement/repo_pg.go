package agreement

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifespring/clinic/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const agreementCols = `id, patient_id, doctor_id, treatment_type, title, content,
	doctor_signed, patient_signed, doctor_signed_at, patient_signed_at, created_at, updated_at`

func (r *repoPG) scanAgreement(row pgx.Row) (*Agreement, error) {
	var a Agreement
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.TreatmentType, &a.Title, &a.Content,
		&a.DoctorSigned, &a.PatientSigned, &a.DoctorSignedAt, &a.PatientSignedAt, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Agreement) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO agreement (id, patient_id, doctor_id, treatment_type, title, content)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.PatientID, a.DoctorID, a.TreatmentType, a.Title, a.Content)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Agreement, error) {
	return r.scanAgreement(r.conn(ctx).QueryRow(ctx, `SELECT `+agreementCols+` FROM agreement WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Agreement) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE agreement SET title=$2, content=$3, doctor_signed=$4, patient_signed=$5,
			doctor_signed_at=$6, patient_signed_at=$7, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Title, a.Content, a.DoctorSigned, a.PatientSigned, a.DoctorSignedAt, a.PatientSignedAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM agreement WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Agreement, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM agreement WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+agreementCols+` FROM agreement
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Agreement
	for rows.Next() {
		a, err := r.scanAgreement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

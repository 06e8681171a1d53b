package servicerequest

import (
	"context"
	"fmt"

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

const requestCols = `id, patient_id, doctor_id, cycle_id, service_id, quantity, status, note, created_at, updated_at`

func (r *repoPG) scanRequest(row pgx.Row) (*ServiceRequest, error) {
	var sr ServiceRequest
	err := row.Scan(&sr.ID, &sr.PatientID, &sr.DoctorID, &sr.CycleID, &sr.ServiceID,
		&sr.Quantity, &sr.Status, &sr.Note, &sr.CreatedAt, &sr.UpdatedAt)
	return &sr, err
}

func (r *repoPG) Create(ctx context.Context, sr *ServiceRequest) error {
	sr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO service_request (id, patient_id, doctor_id, cycle_id, service_id, quantity, status, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sr.ID, sr.PatientID, sr.DoctorID, sr.CycleID, sr.ServiceID, sr.Quantity, sr.Status, sr.Note)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	return r.scanRequest(r.conn(ctx).QueryRow(ctx, `SELECT `+requestCols+` FROM service_request WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, sr *ServiceRequest) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE service_request SET cycle_id=$2, service_id=$3, quantity=$4, status=$5, note=$6, updated_at=NOW()
		WHERE id = $1`,
		sr.ID, sr.CycleID, sr.ServiceID, sr.Quantity, sr.Status, sr.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM service_request WHERE id = $1`, id)
	return err
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*ServiceRequest, int, error) {
	query := `SELECT ` + requestCols + ` FROM service_request WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM service_request WHERE 1=1`
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
	if p, ok := params["cycle_id"]; ok {
		addFilter(fmt.Sprintf(` AND cycle_id = $%d`, idx), p)
	}
	if p, ok := params["status"]; ok {
		addFilter(fmt.Sprintf(` AND status = $%d`, idx), p)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ServiceRequest
	for rows.Next() {
		sr, err := r.scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sr)
	}
	return items, total, nil
}

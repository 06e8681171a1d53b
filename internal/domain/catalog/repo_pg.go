package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifespring/clinic/internal/platform/db"
)

// =========== Medicine Repository ===========

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository { return &medicineRepoPG{pool: pool} }

func (r *medicineRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const medicineCols = `id, name, unit, unit_price, note, active, created_at, updated_at`

func (r *medicineRepoPG) scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &m.UnitPrice, &m.Note, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medicine (id, name, unit, unit_price, note, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.Name, m.Unit, m.UnitPrice, m.Note, m.Active)
	return err
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return r.scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicine WHERE id = $1`, id))
}

func (r *medicineRepoPG) Update(ctx context.Context, m *Medicine) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicine SET name=$2, unit=$3, unit_price=$4, note=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Unit, m.UnitPrice, m.Note, m.Active)
	return err
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicine WHERE id = $1`, id)
	return err
}

func (r *medicineRepoPG) List(ctx context.Context, name string, activeOnly bool, limit, offset int) ([]*Medicine, int, error) {
	query := `SELECT ` + medicineCols + ` FROM medicine WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM medicine WHERE 1=1`
	var args []interface{}
	idx := 1

	if name != "" {
		cond := fmt.Sprintf(` AND name ILIKE $%d`, idx)
		query += cond
		countQuery += cond
		args = append(args, "%"+name+"%")
		idx++
	}
	if activeOnly {
		query += ` AND active`
		countQuery += ` AND active`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := r.scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

// =========== Clinic Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

func (r *serviceRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const clinicServiceCols = `id, code, name, price, note, active, created_at, updated_at`

func (r *serviceRepoPG) scanService(row pgx.Row) (*ClinicService, error) {
	var s ClinicService
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Price, &s.Note, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *serviceRepoPG) Create(ctx context.Context, s *ClinicService) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO clinic_service (id, code, name, price, note, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.Code, s.Name, s.Price, s.Note, s.Active)
	return err
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicService, error) {
	return r.scanService(r.conn(ctx).QueryRow(ctx, `SELECT `+clinicServiceCols+` FROM clinic_service WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, s *ClinicService) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinic_service SET code=$2, name=$3, price=$4, note=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Code, s.Name, s.Price, s.Note, s.Active)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM clinic_service WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context, name string, activeOnly bool, limit, offset int) ([]*ClinicService, int, error) {
	query := `SELECT ` + clinicServiceCols + ` FROM clinic_service WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM clinic_service WHERE 1=1`
	var args []interface{}
	idx := 1

	if name != "" {
		cond := fmt.Sprintf(` AND (name ILIKE $%d OR code ILIKE $%d)`, idx, idx)
		query += cond
		countQuery += cond
		args = append(args, "%"+name+"%")
		idx++
	}
	if activeOnly {
		query += ` AND active`
		countQuery += ` AND active`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ClinicService
	for rows.Next() {
		s, err := r.scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}

package treatment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifespring/clinic/internal/platform/db"
)

type cycleRepoPG struct{ pool *pgxpool.Pool }

func NewCycleRepoPG(pool *pgxpool.Pool) CycleRepository { return &cycleRepoPG{pool: pool} }

func (r *cycleRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const cycleCols = `id, patient_id, doctor_id, agreement_id, treatment_type, current_step,
	completed_steps, status, start_date, end_date, note, created_at, updated_at`

func (r *cycleRepoPG) scanCycle(row pgx.Row) (*TreatmentCycle, error) {
	var c TreatmentCycle
	err := row.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.AgreementID, &c.TreatmentType, &c.CurrentStep,
		&c.CompletedSteps, &c.Status, &c.StartDate, &c.EndDate, &c.Note, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *cycleRepoPG) Create(ctx context.Context, c *TreatmentCycle) error {
	c.ID = uuid.New()
	if c.CompletedSteps == nil {
		c.CompletedSteps = []string{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatment_cycle (id, patient_id, doctor_id, agreement_id, treatment_type,
			current_step, completed_steps, status, start_date, end_date, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.PatientID, c.DoctorID, c.AgreementID, c.TreatmentType,
		c.CurrentStep, c.CompletedSteps, c.Status, c.StartDate, c.EndDate, c.Note)
	return err
}

func (r *cycleRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TreatmentCycle, error) {
	return r.scanCycle(r.conn(ctx).QueryRow(ctx, `SELECT `+cycleCols+` FROM treatment_cycle WHERE id = $1`, id))
}

func (r *cycleRepoPG) Update(ctx context.Context, c *TreatmentCycle) error {
	if c.CompletedSteps == nil {
		c.CompletedSteps = []string{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatment_cycle SET doctor_id=$2, agreement_id=$3, current_step=$4, completed_steps=$5,
			status=$6, start_date=$7, end_date=$8, note=$9, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.DoctorID, c.AgreementID, c.CurrentStep, c.CompletedSteps,
		c.Status, c.StartDate, c.EndDate, c.Note)
	return err
}

func (r *cycleRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatment_cycle WHERE id = $1`, id)
	return err
}

func (r *cycleRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*TreatmentCycle, int, error) {
	query := `SELECT ` + cycleCols + ` FROM treatment_cycle WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM treatment_cycle WHERE 1=1`
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
	if p, ok := params["status"]; ok {
		addFilter(fmt.Sprintf(` AND status = $%d`, idx), p)
	}
	if p, ok := params["treatment_type"]; ok {
		addFilter(fmt.Sprintf(` AND treatment_type = $%d`, idx), p)
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
	var items []*TreatmentCycle
	for rows.Next() {
		c, err := r.scanCycle(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

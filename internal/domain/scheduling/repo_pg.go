package scheduling

import (
	"context"
	"fmt"
	"time"

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

const appointmentCols = `id, patient_id, doctor_id, cycle_id, scheduled_at, duration_minutes,
	status, reason, note, reminder_sent_at, created_at, updated_at`

func (r *repoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.CycleID, &a.ScheduledAt, &a.DurationMinutes,
		&a.Status, &a.Reason, &a.Note, &a.ReminderSentAt, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, cycle_id, scheduled_at,
			duration_minutes, status, reason, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.DoctorID, a.CycleID, a.ScheduledAt,
		a.DurationMinutes, a.Status, a.Reason, a.Note)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+appointmentCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET doctor_id=$2, cycle_id=$3, scheduled_at=$4, duration_minutes=$5,
			status=$6, reason=$7, note=$8, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.DoctorID, a.CycleID, a.ScheduledAt, a.DurationMinutes, a.Status, a.Reason, a.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + appointmentCols + ` FROM appointment WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE 1=1`
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
	if p, ok := params["from"]; ok {
		addFilter(fmt.Sprintf(` AND scheduled_at >= $%d`, idx), p)
	}
	if p, ok := params["to"]; ok {
		addFilter(fmt.Sprintf(` AND scheduled_at < $%d`, idx), p)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY scheduled_at LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *repoPG) DueForReminder(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+appointmentCols+` FROM appointment
		WHERE status IN ($1, $2)
		  AND scheduled_at >= $3 AND scheduled_at < $4
		  AND reminder_sent_at IS NULL
		ORDER BY scheduled_at`,
		StatusPending, StatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

func (r *repoPG) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE appointment SET reminder_sent_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
	return err
}

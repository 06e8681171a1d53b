package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifespring/clinic/internal/platform/db"
)

// =========== Transaction Repository ===========

type transactionRepoPG struct{ pool *pgxpool.Pool }

func NewTransactionRepoPG(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepoPG{pool: pool}
}

func (r *transactionRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const transactionCols = `id, patient_id, type, status, amount, currency, related_entity_type,
	related_entity_id, gateway_ref, description, paid_at, created_at, updated_at`

func (r *transactionRepoPG) scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.PatientID, &t.Type, &t.Status, &t.Amount, &t.Currency, &t.RelatedEntityType,
		&t.RelatedEntityID, &t.GatewayRef, &t.Description, &t.PaidAt, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *transactionRepoPG) Create(ctx context.Context, t *Transaction) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO transaction (id, patient_id, type, status, amount, currency,
			related_entity_type, related_entity_id, gateway_ref, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		t.ID, t.PatientID, t.Type, t.Status, t.Amount, t.Currency,
		t.RelatedEntityType, t.RelatedEntityID, t.GatewayRef, t.Description)
	return err
}

func (r *transactionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return r.scanTransaction(r.conn(ctx).QueryRow(ctx, `SELECT `+transactionCols+` FROM transaction WHERE id = $1`, id))
}

func (r *transactionRepoPG) GetByGatewayRef(ctx context.Context, ref string) (*Transaction, error) {
	return r.scanTransaction(r.conn(ctx).QueryRow(ctx, `SELECT `+transactionCols+` FROM transaction WHERE gateway_ref = $1`, ref))
}

func (r *transactionRepoPG) Update(ctx context.Context, t *Transaction) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE transaction SET status=$2, gateway_ref=$3, description=$4, paid_at=$5, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Status, t.GatewayRef, t.Description, t.PaidAt)
	return err
}

func (r *transactionRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Transaction, int, error) {
	query := `SELECT ` + transactionCols + ` FROM transaction WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM transaction WHERE 1=1`
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
	if p, ok := params["status"]; ok {
		addFilter(fmt.Sprintf(` AND status = $%d`, idx), p)
	}
	if p, ok := params["type"]; ok {
		addFilter(fmt.Sprintf(` AND type = $%d`, idx), p)
	}
	if p, ok := params["related_entity_type"]; ok {
		addFilter(fmt.Sprintf(` AND related_entity_type = $%d`, idx), p)
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
	var items []*Transaction
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}

func (r *transactionRepoPG) ListBetween(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+transactionCols+` FROM transaction
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Transaction
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}

// =========== Cryo Contract Repository ===========

type cryoRepoPG struct{ pool *pgxpool.Pool }

func NewCryoContractRepoPG(pool *pgxpool.Pool) CryoContractRepository {
	return &cryoRepoPG{pool: pool}
}

func (r *cryoRepoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const cryoCols = `id, patient_id, contract_no, specimen_type, start_date, end_date,
	annual_fee, status, note, created_at, updated_at`

func (r *cryoRepoPG) scanContract(row pgx.Row) (*CryoContract, error) {
	var c CryoContract
	err := row.Scan(&c.ID, &c.PatientID, &c.ContractNo, &c.SpecimenType, &c.StartDate, &c.EndDate,
		&c.AnnualFee, &c.Status, &c.Note, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *cryoRepoPG) Create(ctx context.Context, c *CryoContract) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO cryo_contract (id, patient_id, contract_no, specimen_type, start_date,
			end_date, annual_fee, status, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		c.ID, c.PatientID, c.ContractNo, c.SpecimenType, c.StartDate,
		c.EndDate, c.AnnualFee, c.Status, c.Note)
	return err
}

func (r *cryoRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CryoContract, error) {
	return r.scanContract(r.conn(ctx).QueryRow(ctx, `SELECT `+cryoCols+` FROM cryo_contract WHERE id = $1`, id))
}

func (r *cryoRepoPG) Update(ctx context.Context, c *CryoContract) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE cryo_contract SET specimen_type=$2, start_date=$3, end_date=$4,
			annual_fee=$5, status=$6, note=$7, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.SpecimenType, c.StartDate, c.EndDate, c.AnnualFee, c.Status, c.Note)
	return err
}

func (r *cryoRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM cryo_contract WHERE id = $1`, id)
	return err
}

func (r *cryoRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CryoContract, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM cryo_contract WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+cryoCols+` FROM cryo_contract
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CryoContract
	for rows.Next() {
		c, err := r.scanContract(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

// Package charge implements the ServiceCharge repository using PostgreSQL.
// Charges live in service_charges; their payment history is the append-only
// payment_entries table. Money columns are NUMERIC and cross the wire as
// text so no precision is lost.
package charge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/filatei/btorestate/internal/adapter/postgres"
	"github.com/filatei/btorestate/internal/domain"
)

// Repo provides service charge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// New creates a new service charge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var chargeColumns = []string{
	"c.id", "c.estate_id", "c.title", "c.description", "c.amount::text", "c.due_date",
	"c.paid_amount::text", "c.status", "c.last_payment_date", "c.payment_method",
	"c.created_by", "c.version", "c.created_at", "c.updated_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a charge with its full payment history.
// Returns domain.ErrNotFound if the charge does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceCharge, error) {
	query, args, err := r.psql.Select(chargeColumns...).
		From("service_charges c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get charge query: %w", err)
	}

	c, err := scanCharge(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "service charge", id)
	}

	if err := r.attachHistory(ctx, []*domain.ServiceCharge{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the charges of one estate ordered by due date, newest first.
func (r *Repo) List(ctx context.Context, filter domain.ChargeFilter) ([]*domain.ServiceCharge, error) {
	b := r.psql.Select(chargeColumns...).
		From("service_charges c").
		Where(squirrel.Eq{"c.estate_id": filter.EstateID}).
		OrderBy("c.due_date DESC", "c.id")

	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"c.status": string(*filter.Status)})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	return r.query(ctx, b)
}

// ListOutstanding returns every unpaid charge across the estates userID
// belongs to, earliest due first.
func (r *Repo) ListOutstanding(ctx context.Context, userID uuid.UUID) ([]*domain.ServiceCharge, error) {
	b := r.psql.Select(chargeColumns...).
		From("service_charges c").
		Join("estates e ON e.id = c.estate_id").
		Where("? = ANY(e.members)", userID).
		Where(squirrel.NotEq{"c.status": string(domain.ChargeStatusPaid)}).
		OrderBy("c.due_date", "c.id")

	return r.query(ctx, b)
}

func (r *Repo) query(ctx context.Context, b squirrel.SelectBuilder) ([]*domain.ServiceCharge, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list charges query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	charges := make([]*domain.ServiceCharge, 0)
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	rows.Close()

	if err := r.attachHistory(ctx, charges); err != nil {
		return nil, err
	}
	return charges, nil
}

const historySQL = `
SELECT id, charge_id, seq, amount::text, method, user_id, receipt_url, idempotency_key, created_at
FROM payment_entries
WHERE charge_id = ANY($1::uuid[])
ORDER BY charge_id, seq`

// attachHistory loads the payment entries of all charges in one round trip.
func (r *Repo) attachHistory(ctx context.Context, charges []*domain.ServiceCharge) error {
	if len(charges) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.ServiceCharge, len(charges))
	ids := make([]uuid.UUID, len(charges))
	for i, c := range charges {
		byID[c.ID] = c
		ids[i] = c.ID
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, historySQL, ids)
	if err != nil {
		return fmt.Errorf("load payment history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e      domain.PaymentEntry
			amount string
			method string
		)
		if err := rows.Scan(&e.ID, &e.ChargeID, &e.Seq, &amount, &method, &e.UserID,
			&e.ReceiptURL, &e.IdempotencyKey, &e.CreatedAt); err != nil {
			return fmt.Errorf("scan payment entry: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("decode payment amount: %w", err)
		}
		e.Method = domain.PaymentMethod(method)
		e.CreatedAt = e.CreatedAt.UTC()

		c := byID[e.ChargeID]
		c.PaymentHistory = append(c.PaymentHistory, e)
	}
	return rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new charge at version 1 and sets c.Version accordingly.
func (r *Repo) Create(ctx context.Context, c *domain.ServiceCharge) error {
	query, args, err := r.psql.Insert("service_charges").
		Columns("id", "estate_id", "title", "description", "amount", "due_date", "paid_amount",
			"status", "created_by", "version", "created_at", "updated_at").
		Values(c.ID, c.EstateID, c.Title, c.Description,
			squirrel.Expr("?::numeric", c.Amount.String()), c.DueDate,
			squirrel.Expr("?::numeric", c.PaidAmount.String()),
			string(c.Status), c.CreatedBy, 1, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert charge query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "service charge", c.ID)
	}

	c.Version = 1
	return nil
}

const insertEntrySQL = `
INSERT INTO payment_entries (id, charge_id, seq, amount, method, user_id, receipt_url, idempotency_key, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)`

// SavePayment persists a charge that has just accepted entry. The charge row
// is written under its version, then the entry is appended, so it must run
// inside TxManager.RunInTx.
func (r *Repo) SavePayment(ctx context.Context, c *domain.ServiceCharge, entry domain.PaymentEntry) error {
	if !postgres.InTx(ctx) {
		return fmt.Errorf("save payment on charge %s: %w", c.ID, postgres.ErrNoTx)
	}
	if err := r.update(ctx, c); err != nil {
		return err
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertEntrySQL,
		entry.ID, entry.ChargeID, entry.Seq, entry.Amount.String(), string(entry.Method),
		entry.UserID, entry.ReceiptURL, entry.IdempotencyKey, entry.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "payment entry", entry.ID)
	}
	return nil
}

// UpdateStatus persists a status change that did not add a payment.
func (r *Repo) UpdateStatus(ctx context.Context, c *domain.ServiceCharge) error {
	return r.update(ctx, c)
}

const updateSQL = `
UPDATE service_charges
SET paid_amount = $3::numeric, status = $4, last_payment_date = $5, payment_method = $6,
    updated_at = $7, version = version + 1
WHERE id = $1 AND version = $2
RETURNING version`

func (r *Repo) update(ctx context.Context, c *domain.ServiceCharge) error {
	var method *string
	if c.PaymentMethod != nil {
		m := string(*c.PaymentMethod)
		method = &m
	}

	var next int64
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateSQL,
		c.ID, c.Version, c.PaidAmount.String(), string(c.Status), c.LastPaymentDate, method, c.UpdatedAt,
	).Scan(&next)
	if errors.Is(err, pgx.ErrNoRows) {
		return postgres.VersionConflict("service charge", c.ID, c.Version)
	}
	if err != nil {
		return postgres.MapError(err, "service charge", c.ID)
	}

	c.Version = next
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanCharge(row pgx.Row) (*domain.ServiceCharge, error) {
	var (
		c        domain.ServiceCharge
		amount   string
		paid     string
		status   string
		method   *string
		lastPaid *time.Time
	)

	err := row.Scan(&c.ID, &c.EstateID, &c.Title, &c.Description, &amount, &c.DueDate,
		&paid, &status, &lastPaid, &method, &c.CreatedBy, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if c.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("decode amount: %w", err)
	}
	if c.PaidAmount, err = decimal.NewFromString(paid); err != nil {
		return nil, fmt.Errorf("decode paid amount: %w", err)
	}

	c.Status = domain.ChargeStatus(status)
	if method != nil {
		m := domain.PaymentMethod(*method)
		c.PaymentMethod = &m
	}
	if lastPaid != nil {
		t := lastPaid.UTC()
		c.LastPaymentDate = &t
	}
	c.DueDate = c.DueDate.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	c.PaymentHistory = []domain.PaymentEntry{}

	return &c, nil
}

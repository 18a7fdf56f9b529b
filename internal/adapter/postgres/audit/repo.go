// Package audit implements the append-only membership audit log using
// PostgreSQL. Records are inserted inside the transaction that commits the
// estate change, so a rolled-back transition leaves no trace.
package audit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/filatei/btorestate/internal/adapter/postgres"
	"github.com/filatei/btorestate/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const appendSQL = `
INSERT INTO membership_audit (id, estate_id, actor_id, subject_id, action, estate_version, member_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Append inserts rec. It must run inside TxManager.RunInTx so the record
// commits together with the estate change it describes.
func (r *Repo) Append(ctx context.Context, rec domain.AuditRecord) error {
	if !postgres.InTx(ctx) {
		return fmt.Errorf("append audit record for estate %s: %w", rec.EstateID, postgres.ErrNoTx)
	}
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, appendSQL,
		rec.ID, rec.EstateID, rec.ActorID, rec.SubjectID, rec.Action,
		rec.EstateVersion, rec.MemberCount, rec.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "audit record", rec.ID)
	}
	return nil
}

// ListByEstate returns the estate's audit trail, newest first.
// Returns an empty slice (not nil) when there is none.
func (r *Repo) ListByEstate(ctx context.Context, estateID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	b := r.psql.Select("id", "estate_id", "actor_id", "subject_id", "action", "estate_version", "member_count", "created_at").
		From("membership_audit").
		Where(squirrel.Eq{"estate_id": estateID}).
		OrderBy("created_at DESC", "estate_version DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditRecord, error) {
		var rec domain.AuditRecord
		err := row.Scan(&rec.ID, &rec.EstateID, &rec.ActorID, &rec.SubjectID, &rec.Action,
			&rec.EstateVersion, &rec.MemberCount, &rec.CreatedAt)
		rec.CreatedAt = rec.CreatedAt.UTC()
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan audit records: %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	return records, nil
}

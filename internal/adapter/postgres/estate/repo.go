// Package estate implements the Estate repository using PostgreSQL.
// Member, admin, pending and invited sets are stored as uuid[] columns and
// invite tokens as JSONB keyed by invitee. Every write is guarded by the
// row version.
package estate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/filatei/btorestate/internal/adapter/postgres"
	"github.com/filatei/btorestate/internal/domain"
)

// Repo provides estate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// New creates a new estate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var columns = []string{
	"id", "name", "address", "type", "created_by", "members", "admins", "member_count",
	"pending_requests", "invited_users", "invite_tokens", "version", "created_at", "updated_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT id, name, address, type, created_by, members, admins, member_count,
       pending_requests, invited_users, invite_tokens, version, created_at, updated_at
FROM estates
WHERE id = $1`

// GetByID returns an estate by primary key.
// Returns domain.ErrNotFound if the estate does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEstate(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "estate", id)
	}
	return e, nil
}

// List returns estates matching the filter ordered by name.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.EstateFilter) ([]*domain.Estate, error) {
	b := r.psql.Select(columns...).From("estates").OrderBy("lower(name)", "id")

	if filter.MemberID != nil {
		b = b.Where("? = ANY(members)", *filter.MemberID)
	}
	if filter.ExcludeMemberID != nil {
		b = b.Where("NOT (? = ANY(members))", *filter.ExcludeMemberID)
	}
	if filter.Search != "" {
		b = b.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list estates query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list estates: %w", err)
	}
	defer rows.Close()

	estates := make([]*domain.Estate, 0)
	for rows.Next() {
		e, err := scanEstate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estate: %w", err)
		}
		estates = append(estates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list estates: %w", err)
	}

	return estates, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new estate at version 1 and sets e.Version accordingly.
func (r *Repo) Create(ctx context.Context, e *domain.Estate) error {
	tokens, err := json.Marshal(e.InviteTokens)
	if err != nil {
		return fmt.Errorf("marshal invite tokens: %w", err)
	}

	query, args, err := r.psql.Insert("estates").
		Columns(columns...).
		Values(e.ID, e.Name, e.Address, string(e.Type), e.CreatedBy, e.Members, e.Admins, e.MemberCount,
			e.PendingRequests, e.InvitedUsers, tokens, 1, e.CreatedAt, e.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert estate query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "estate", e.ID)
	}

	e.Version = 1
	return nil
}

const updateSQL = `
UPDATE estates
SET name = $3, address = $4, type = $5, members = $6, admins = $7, member_count = $8,
    pending_requests = $9, invited_users = $10, invite_tokens = $11, updated_at = $12,
    version = version + 1
WHERE id = $1 AND version = $2
RETURNING version`

// Update writes e if its stored version still equals e.Version and bumps the
// version. A stale version yields an error matching domain.ErrContention.
func (r *Repo) Update(ctx context.Context, e *domain.Estate) error {
	tokens, err := json.Marshal(e.InviteTokens)
	if err != nil {
		return fmt.Errorf("marshal invite tokens: %w", err)
	}

	var next int64
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateSQL,
		e.ID, e.Version, e.Name, e.Address, string(e.Type), e.Members, e.Admins, e.MemberCount,
		e.PendingRequests, e.InvitedUsers, tokens, e.UpdatedAt,
	).Scan(&next)
	if errors.Is(err, pgx.ErrNoRows) {
		return postgres.VersionConflict("estate", e.ID, e.Version)
	}
	if err != nil {
		return postgres.MapError(err, "estate", e.ID)
	}

	e.Version = next
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanEstate(row pgx.Row) (*domain.Estate, error) {
	var (
		e        domain.Estate
		typ      string
		tokens   []byte
		created  time.Time
		modified time.Time
	)

	err := row.Scan(&e.ID, &e.Name, &e.Address, &typ, &e.CreatedBy, &e.Members, &e.Admins, &e.MemberCount,
		&e.PendingRequests, &e.InvitedUsers, &tokens, &e.Version, &created, &modified)
	if err != nil {
		return nil, err
	}

	e.Type = domain.EstateType(typ)
	e.CreatedAt = created.UTC()
	e.UpdatedAt = modified.UTC()
	e.InviteTokens = map[uuid.UUID]domain.InviteToken{}
	if len(tokens) > 0 {
		if err := json.Unmarshal(tokens, &e.InviteTokens); err != nil {
			return nil, fmt.Errorf("decode invite tokens: %w", err)
		}
	}
	e.Members = nonNil(e.Members)
	e.Admins = nonNil(e.Admins)
	e.PendingRequests = nonNil(e.PendingRequests)
	e.InvitedUsers = nonNil(e.InvitedUsers)

	return &e, nil
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

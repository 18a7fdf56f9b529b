// Package notification implements the notification inbox repository using
// PostgreSQL. A (recipient_id, dedup_key) unique constraint makes creation
// idempotent per transition.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/filatei/btorestate/internal/adapter/postgres"
	"github.com/filatei/btorestate/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var columns = []string{
	"id", "recipient_id", "type", "title", "message", "read", "estate_id",
	"requester_id", "invite_token", "dedup_key", "created_at", "read_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one of the recipient's notifications.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (r *Repo) GetByID(ctx context.Context, recipientID, id uuid.UUID) (*domain.Notification, error) {
	query, args, err := r.psql.Select(columns...).
		From("notifications").
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get notification query: %w", err)
	}

	n, err := scanNotification(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "notification", id)
	}
	return n, nil
}

// ListByRecipient returns the recipient's notifications, newest first.
// Returns an empty slice (not nil) when the inbox is empty.
func (r *Repo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	b := r.psql.Select(columns...).
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC", "id")

	if unreadOnly {
		b = b.Where(squirrel.Eq{"read": false})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return items, nil
}

const countUnreadSQL = `SELECT count(*) FROM notifications WHERE recipient_id = $1 AND NOT read`

// CountUnread returns the number of unread notifications for the recipient.
func (r *Repo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countUnreadSQL, recipientID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts n unless the recipient already holds a notification with the
// same dedup key, in which case it reports duplicate and writes nothing.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (duplicate bool, err error) {
	query, args, err := r.psql.Insert("notifications").
		Columns(columns...).
		Values(n.ID, n.RecipientID, string(n.Type), n.Title, n.Message, n.Read, n.EstateID,
			n.RequesterID, n.InviteToken, n.DedupKey, n.CreatedAt, n.ReadAt).
		Suffix("ON CONFLICT (recipient_id, dedup_key) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert notification query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "notification", n.ID)
	}
	return tag.RowsAffected() == 0, nil
}

const markReadSQL = `
UPDATE notifications
SET read = true, read_at = COALESCE(read_at, $3)
WHERE id = $1 AND recipient_id = $2`

// MarkRead flags one notification as read. Marking an already-read
// notification succeeds and keeps its original read_at.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (r *Repo) MarkRead(ctx context.Context, recipientID, id uuid.UUID, now time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markReadSQL, id, recipientID, now)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const markAllReadSQL = `
UPDATE notifications
SET read = true, read_at = $2
WHERE recipient_id = $1 AND NOT read`

// MarkAllRead flags every unread notification of the recipient and returns
// how many changed. Calling it on an already-read inbox returns 0.
func (r *Repo) MarkAllRead(ctx context.Context, recipientID uuid.UUID, now time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markAllReadSQL, recipientID, now)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		n   domain.Notification
		typ string
	)

	err := row.Scan(&n.ID, &n.RecipientID, &typ, &n.Title, &n.Message, &n.Read, &n.EstateID,
		&n.RequesterID, &n.InviteToken, &n.DedupKey, &n.CreatedAt, &n.ReadAt)
	if err != nil {
		return nil, err
	}

	n.Type = domain.NotificationType(typ)
	n.CreatedAt = n.CreatedAt.UTC()
	if n.ReadAt != nil {
		t := n.ReadAt.UTC()
		n.ReadAt = &t
	}
	return &n, nil
}

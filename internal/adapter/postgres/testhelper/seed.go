package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/filatei/btorestate/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedEstate inserts an estate created by creatorID with the given extra
// members. Returns the estate as stored, version 1.
func SeedEstate(t *testing.T, pool *pgxpool.Pool, creatorID uuid.UUID, members ...uuid.UUID) *domain.Estate {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.NewEstate(uuid.New(), "Estate "+uniqueSuffix(), "12 Admiralty Way", domain.EstateTypeResidential, creatorID, now)
	e.Members = append(e.Members, members...)
	e.MemberCount = len(e.Members)
	e.Version = 1

	tokens, err := json.Marshal(e.InviteTokens)
	if err != nil {
		t.Fatalf("testhelper: SeedEstate marshal tokens: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO estates (id, name, address, type, created_by, members, admins, member_count,
		                      pending_requests, invited_users, invite_tokens, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		e.ID, e.Name, e.Address, string(e.Type), e.CreatedBy, e.Members, e.Admins, e.MemberCount,
		e.PendingRequests, e.InvitedUsers, tokens, e.Version, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEstate insert estate: %v", err)
	}

	return e
}

// SeedCharge inserts a pending service charge of amount for estateID.
func SeedCharge(t *testing.T, pool *pgxpool.Pool, estateID, createdBy uuid.UUID, amount string) *domain.ServiceCharge {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.NewServiceCharge(uuid.New(), estateID, createdBy,
		"Service charge "+uniqueSuffix(), "quarterly dues", decimal.RequireFromString(amount),
		now.Add(30*24*time.Hour), now)
	c.Version = 1

	_, err := pool.Exec(ctx,
		`INSERT INTO service_charges (id, estate_id, title, description, amount, due_date, paid_amount,
		                              status, created_by, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, 0, 'pending', $7, $8, $9, $9)`,
		c.ID, c.EstateID, c.Title, c.Description, c.Amount.String(), c.DueDate, c.CreatedBy, c.Version, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCharge insert charge: %v", err)
	}

	return c
}

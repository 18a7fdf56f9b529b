package domain

import "github.com/google/uuid"

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// EstateFilter selects estates for listing and discovery.
type EstateFilter struct {
	// MemberID keeps only estates the user belongs to.
	MemberID *uuid.UUID

	// ExcludeMemberID drops estates the user already belongs to.
	ExcludeMemberID *uuid.UUID

	// Search is a case-insensitive substring match on the estate name.
	Search string

	// Limit 0 means "no limit"; callers bound it with Normalize.
	Limit  int
	Offset int
}

// Normalize clamps paging to the default and maximum page size.
func (f *EstateFilter) Normalize() {
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
}

// ChargeFilter selects the charges of one estate.
type ChargeFilter struct {
	EstateID uuid.UUID
	Status   *ChargeStatus
	Limit    int
	Offset   int
}

// Normalize clamps paging to the default and maximum page size.
func (f *ChargeFilter) Normalize() {
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

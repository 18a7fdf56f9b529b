package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one committed membership transition. Records are written in
// the same transaction as the estate change and never modified.
type AuditRecord struct {
	ID       uuid.UUID
	EstateID uuid.UUID
	ActorID  uuid.UUID
	// SubjectID is the user whose standing changed; the actor for self-service transitions.
	SubjectID uuid.UUID
	Action    string
	// EstateVersion is the estate version the transition produced.
	EstateVersion int64
	MemberCount   int
	CreatedAt     time.Time
}

// NewAuditRecord captures e as it stands after the transition.
func NewAuditRecord(id uuid.UUID, e *Estate, actorID, subjectID uuid.UUID, action string, now time.Time) AuditRecord {
	return AuditRecord{
		ID:            id,
		EstateID:      e.ID,
		ActorID:       actorID,
		SubjectID:     subjectID,
		Action:        action,
		EstateVersion: e.Version,
		MemberCount:   e.MemberCount,
		CreatedAt:     now,
	}
}

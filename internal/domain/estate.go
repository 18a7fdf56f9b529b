package domain

import (
	"crypto/subtle"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// InviteToken is the credential attached to an outstanding invitation.
type InviteToken struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issuedAt"`
	IssuedBy uuid.UUID `json:"issuedBy"`
}

// Estate is the membership aggregate. Its sets are kept in insertion order.
//
// The transition methods below are the only code that writes Members, Admins,
// MemberCount, PendingRequests, InvitedUsers and InviteTokens. Each one
// checks authorization, applies the change and verifies the invariants.
type Estate struct {
	ID              uuid.UUID
	Name            string
	Address         string
	Type            EstateType
	CreatedBy       uuid.UUID
	Members         []uuid.UUID
	Admins          []uuid.UUID
	MemberCount     int
	PendingRequests []uuid.UUID
	InvitedUsers    []uuid.UUID
	InviteTokens    map[uuid.UUID]InviteToken
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewEstate returns an estate whose creator is its sole member and admin.
func NewEstate(id uuid.UUID, name, address string, typ EstateType, creator uuid.UUID, now time.Time) *Estate {
	return &Estate{
		ID:              id,
		Name:            name,
		Address:         address,
		Type:            typ,
		CreatedBy:       creator,
		Members:         []uuid.UUID{creator},
		Admins:          []uuid.UUID{creator},
		MemberCount:     1,
		PendingRequests: []uuid.UUID{},
		InvitedUsers:    []uuid.UUID{},
		InviteTokens:    map[uuid.UUID]InviteToken{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (e *Estate) IsMember(userID uuid.UUID) bool  { return slices.Contains(e.Members, userID) }
func (e *Estate) IsAdmin(userID uuid.UUID) bool   { return slices.Contains(e.Admins, userID) }
func (e *Estate) IsCreator(userID uuid.UUID) bool { return e.CreatedBy == userID }
func (e *Estate) IsPending(userID uuid.UUID) bool { return slices.Contains(e.PendingRequests, userID) }
func (e *Estate) IsInvited(userID uuid.UUID) bool { return slices.Contains(e.InvitedUsers, userID) }

// RelationshipOf returns the user's current standing towards the estate.
func (e *Estate) RelationshipOf(userID uuid.UUID) Relationship {
	switch {
	case e.IsAdmin(userID):
		return RelationshipAdmin
	case e.IsMember(userID):
		return RelationshipMember
	case e.IsPending(userID):
		return RelationshipPendingRequester
	case e.IsInvited(userID):
		return RelationshipInvited
	default:
		return RelationshipOutsider
	}
}

// RequestJoin moves an outsider to pendingRequests.
func (e *Estate) RequestJoin(userID uuid.UUID) error {
	switch e.RelationshipOf(userID) {
	case RelationshipMember, RelationshipAdmin:
		return fmt.Errorf("%w: already a member", ErrConflict)
	case RelationshipPendingRequester:
		return fmt.Errorf("%w: join request already pending", ErrConflict)
	case RelationshipInvited:
		return fmt.Errorf("%w: an invitation is outstanding, accept it instead", ErrConflict)
	}

	e.PendingRequests = append(e.PendingRequests, userID)
	return e.CheckInvariants()
}

// CancelRequest withdraws the user's own pending join request.
func (e *Estate) CancelRequest(userID uuid.UUID) error {
	if !e.IsPending(userID) {
		return fmt.Errorf("%w: no pending join request", ErrConflict)
	}

	e.PendingRequests = remove(e.PendingRequests, userID)
	return e.CheckInvariants()
}

// Approve admits a pending requester as a member.
func (e *Estate) Approve(actorID, userID uuid.UUID) error {
	if !e.IsAdmin(actorID) {
		return fmt.Errorf("%w: only admins may approve join requests", ErrForbidden)
	}
	if !e.IsPending(userID) {
		return fmt.Errorf("%w: user has no pending join request", ErrConflict)
	}

	e.PendingRequests = remove(e.PendingRequests, userID)
	e.Members = append(e.Members, userID)
	e.MemberCount++
	return e.CheckInvariants()
}

// Decline rejects a pending requester, returning them to outsider.
func (e *Estate) Decline(actorID, userID uuid.UUID) error {
	if !e.IsAdmin(actorID) {
		return fmt.Errorf("%w: only admins may decline join requests", ErrForbidden)
	}
	if !e.IsPending(userID) {
		return fmt.Errorf("%w: user has no pending join request", ErrConflict)
	}

	e.PendingRequests = remove(e.PendingRequests, userID)
	return e.CheckInvariants()
}

// Invite issues (or re-issues) an invitation. Re-issuing replaces the stored
// token, so any previously delivered token stops working. It reports whether
// an existing invitation was replaced.
func (e *Estate) Invite(actorID, userID uuid.UUID, token InviteToken) (bool, error) {
	if !e.IsAdmin(actorID) {
		return false, fmt.Errorf("%w: only admins may send invitations", ErrForbidden)
	}
	if token.Token == "" {
		return false, NewValidationError("token", "required")
	}

	reissued := false
	switch e.RelationshipOf(userID) {
	case RelationshipMember, RelationshipAdmin:
		return false, fmt.Errorf("%w: user is already a member", ErrConflict)
	case RelationshipPendingRequester:
		return false, fmt.Errorf("%w: user has a pending join request, approve it instead", ErrConflict)
	case RelationshipInvited:
		reissued = true
	default:
		e.InvitedUsers = append(e.InvitedUsers, userID)
	}

	if e.InviteTokens == nil {
		e.InviteTokens = map[uuid.UUID]InviteToken{}
	}
	e.InviteTokens[userID] = token
	return reissued, e.CheckInvariants()
}

// RevokeInvite withdraws an outstanding invitation.
func (e *Estate) RevokeInvite(actorID, userID uuid.UUID) error {
	if !e.IsAdmin(actorID) {
		return fmt.Errorf("%w: only admins may revoke invitations", ErrForbidden)
	}
	if !e.IsInvited(userID) {
		return fmt.Errorf("%w: user has no outstanding invitation", ErrConflict)
	}

	e.InvitedUsers = remove(e.InvitedUsers, userID)
	delete(e.InviteTokens, userID)
	return e.CheckInvariants()
}

// AcceptInvite redeems the invitation. The presented token must equal the
// stored one exactly; otherwise nothing changes and ErrInvalidToken is returned.
func (e *Estate) AcceptInvite(userID uuid.UUID, token string) error {
	if e.IsMember(userID) {
		return fmt.Errorf("%w: already a member", ErrConflict)
	}

	stored, ok := e.InviteTokens[userID]
	if !ok || !e.IsInvited(userID) {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(stored.Token), []byte(token)) != 1 {
		return ErrInvalidToken
	}

	e.InvitedUsers = remove(e.InvitedUsers, userID)
	delete(e.InviteTokens, userID)
	e.Members = append(e.Members, userID)
	e.MemberCount++
	return e.CheckInvariants()
}

// DeclineInvite drops the user's outstanding invitation.
func (e *Estate) DeclineInvite(userID uuid.UUID) error {
	if !e.IsInvited(userID) {
		return fmt.Errorf("%w: no outstanding invitation", ErrConflict)
	}

	e.InvitedUsers = remove(e.InvitedUsers, userID)
	delete(e.InviteTokens, userID)
	return e.CheckInvariants()
}

// GrantAdmin promotes a member. Only the creator may do it, never on themselves.
func (e *Estate) GrantAdmin(actorID, userID uuid.UUID) error {
	if err := e.authorizeAdminToggle(actorID, userID); err != nil {
		return err
	}
	if !e.IsMember(userID) {
		return fmt.Errorf("%w: user is not a member", ErrConflict)
	}
	if e.IsAdmin(userID) {
		return fmt.Errorf("%w: user is already an admin", ErrConflict)
	}

	e.Admins = append(e.Admins, userID)
	return e.CheckInvariants()
}

// RevokeAdmin demotes an admin back to member.
func (e *Estate) RevokeAdmin(actorID, userID uuid.UUID) error {
	if err := e.authorizeAdminToggle(actorID, userID); err != nil {
		return err
	}
	if !e.IsAdmin(userID) {
		return fmt.Errorf("%w: user is not an admin", ErrConflict)
	}

	e.Admins = remove(e.Admins, userID)
	return e.CheckInvariants()
}

func (e *Estate) authorizeAdminToggle(actorID, userID uuid.UUID) error {
	if !e.IsCreator(actorID) {
		return fmt.Errorf("%w: only the estate creator may change admin status", ErrForbidden)
	}
	if actorID == userID {
		return fmt.Errorf("%w: cannot change your own admin status", ErrForbidden)
	}
	return nil
}

// Leave removes a member (and their admin role). The creator cannot leave.
func (e *Estate) Leave(userID uuid.UUID) error {
	if e.IsCreator(userID) {
		return fmt.Errorf("%w: the estate creator cannot leave", ErrForbidden)
	}
	if !e.IsMember(userID) {
		return fmt.Errorf("%w: not a member", ErrConflict)
	}

	e.Members = remove(e.Members, userID)
	e.Admins = remove(e.Admins, userID)
	e.MemberCount--
	return e.CheckInvariants()
}

// AuthorizeAnnouncement checks that actorID may broadcast to the members.
func (e *Estate) AuthorizeAnnouncement(actorID uuid.UUID) error {
	if !e.IsAdmin(actorID) {
		return fmt.Errorf("%w: only admins may post announcements", ErrForbidden)
	}
	return nil
}

// InviteIssuer returns who should hear back about userID's invitation: the
// admin who issued it while they are still an admin, otherwise the creator.
func (e *Estate) InviteIssuer(userID uuid.UUID) uuid.UUID {
	if tok, ok := e.InviteTokens[userID]; ok && e.IsAdmin(tok.IssuedBy) {
		return tok.IssuedBy
	}
	return e.CreatedBy
}

// Redacted returns a copy without invite tokens for viewers who are not admins.
func (e *Estate) Redacted(viewerID uuid.UUID) *Estate {
	c := e.Clone()
	if !e.IsAdmin(viewerID) {
		c.InviteTokens = map[uuid.UUID]InviteToken{}
	}
	return c
}

// CheckInvariants verifies the membership invariants. A failure wraps ErrInvariant.
func (e *Estate) CheckInvariants() error {
	violation := func(format string, args ...any) error {
		return fmt.Errorf("estate %s: %w: %s", e.ID, ErrInvariant, fmt.Sprintf(format, args...))
	}

	if e.MemberCount != len(e.Members) {
		return violation("memberCount %d != %d members", e.MemberCount, len(e.Members))
	}
	for name, set := range map[string][]uuid.UUID{
		"members":         e.Members,
		"admins":          e.Admins,
		"pendingRequests": e.PendingRequests,
		"invitedUsers":    e.InvitedUsers,
	} {
		if hasDuplicates(set) {
			return violation("duplicate entry in %s", name)
		}
	}
	for _, id := range e.Admins {
		if !e.IsMember(id) {
			return violation("admin %s is not a member", id)
		}
	}
	if !e.IsMember(e.CreatedBy) || !e.IsAdmin(e.CreatedBy) {
		return violation("creator %s must be member and admin", e.CreatedBy)
	}
	for _, id := range e.PendingRequests {
		if e.IsMember(id) {
			return violation("pending requester %s is already a member", id)
		}
		if e.IsInvited(id) {
			return violation("user %s is both pending and invited", id)
		}
	}
	for _, id := range e.InvitedUsers {
		if e.IsMember(id) {
			return violation("invited user %s is already a member", id)
		}
		if _, ok := e.InviteTokens[id]; !ok {
			return violation("invited user %s has no token", id)
		}
	}
	if len(e.InviteTokens) != len(e.InvitedUsers) {
		return violation("%d invite tokens for %d invited users", len(e.InviteTokens), len(e.InvitedUsers))
	}

	return nil
}

// Clone returns a deep copy.
func (e *Estate) Clone() *Estate {
	c := *e
	c.Members = slices.Clone(e.Members)
	c.Admins = slices.Clone(e.Admins)
	c.PendingRequests = slices.Clone(e.PendingRequests)
	c.InvitedUsers = slices.Clone(e.InvitedUsers)
	c.InviteTokens = maps.Clone(e.InviteTokens)
	if c.InviteTokens == nil {
		c.InviteTokens = map[uuid.UUID]InviteToken{}
	}
	return &c
}

// RecipientsExcept returns ids without exclude, preserving order and dropping duplicates.
func RecipientsExcept(ids []uuid.UUID, exclude uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == exclude || id == uuid.Nil || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func remove(set []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(slices.Clone(set), func(v uuid.UUID) bool { return v == id })
}

func hasDuplicates(set []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(set))
	for _, id := range set {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/service/membership"
)

type membershipService interface {
	CreateEstate(ctx context.Context, input membership.CreateEstateInput) (*membership.TransitionResult, error)
	GetEstate(ctx context.Context, estateID uuid.UUID) (*domain.Estate, error)
	ListMyEstates(ctx context.Context) ([]*domain.Estate, error)
	DiscoverEstates(ctx context.Context, input membership.DiscoverInput) ([]*domain.Estate, error)
	GetRelationship(ctx context.Context, estateID uuid.UUID) (domain.Relationship, error)
	ListAudit(ctx context.Context, input membership.AuditInput) ([]domain.AuditRecord, error)
	RequestJoin(ctx context.Context, input membership.EstateInput) (*membership.TransitionResult, error)
	CancelRequest(ctx context.Context, input membership.EstateInput) (*membership.TransitionResult, error)
	ApproveRequest(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)
	DeclineRequest(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)
	Invite(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)
	RevokeInvite(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)
	AcceptInvite(ctx context.Context, input membership.AcceptInviteInput) (*membership.TransitionResult, error)
	DeclineInvite(ctx context.Context, input membership.EstateInput) (*membership.TransitionResult, error)
	GrantAdmin(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)
	RevokeAdmin(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)
	Leave(ctx context.Context, input membership.EstateInput) (*membership.TransitionResult, error)
	Announce(ctx context.Context, input membership.AnnounceInput) (*membership.TransitionResult, error)
}

// EstateHandler serves estate and membership endpoints.
type EstateHandler struct {
	svc membershipService
	log *slog.Logger
}

// NewEstateHandler creates an EstateHandler.
func NewEstateHandler(svc membershipService, logger *slog.Logger) *EstateHandler {
	return &EstateHandler{svc: svc, log: logger.With("handler", "estate")}
}

type createEstateRequest struct {
	Name    string            `json:"name"`
	Address string            `json:"address"`
	Type    domain.EstateType `json:"type"`
}

type inviteRequest struct {
	UserID uuid.UUID `json:"userId"`
}

type acceptInviteRequest struct {
	Token string `json:"token"`
}

type announceRequest struct {
	Message string `json:"message"`
}

// Create handles POST /estates.
func (h *EstateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEstateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.CreateEstate(r.Context(), membership.CreateEstateInput{
		Name:           req.Name,
		Address:        req.Address,
		Type:           req.Type,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondTransition(w, r, http.StatusCreated, res, err)
}

// ListMine handles GET /estates.
func (h *EstateHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	estates, err := h.svc.ListMyEstates(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEstateList(estates))
}

// Discover handles GET /estates/discover?search=&limit=&offset=.
func (h *EstateHandler) Discover(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	estates, err := h.svc.DiscoverEstates(r.Context(), membership.DiscoverInput{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEstateList(estates))
}

// Get handles GET /estates/{estateID}.
func (h *EstateHandler) Get(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.GetEstate(r.Context(), estateID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEstateResponse(e))
}

// Relationship handles GET /estates/{estateID}/relationship.
func (h *EstateHandler) Relationship(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rel, err := h.svc.GetRelationship(r.Context(), estateID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, relationshipResponse{EstateID: estateID, Relationship: rel})
}

// Audit handles GET /estates/{estateID}/audit?limit=&offset=. Admins only.
func (h *EstateHandler) Audit(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	records, err := h.svc.ListAudit(r.Context(), membership.AuditInput{EstateID: estateID, Limit: limit, Offset: offset})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditList(records))
}

// RequestJoin handles POST /estates/{estateID}/join-requests.
func (h *EstateHandler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	h.self(w, r, h.svc.RequestJoin)
}

// CancelRequest handles DELETE /estates/{estateID}/join-requests.
func (h *EstateHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	h.self(w, r, h.svc.CancelRequest)
}

// Approve handles POST /estates/{estateID}/join-requests/{userID}/approve.
func (h *EstateHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.onTarget(w, r, h.svc.ApproveRequest)
}

// Decline handles POST /estates/{estateID}/join-requests/{userID}/decline.
func (h *EstateHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.onTarget(w, r, h.svc.DeclineRequest)
}

// Invite handles POST /estates/{estateID}/invites.
func (h *EstateHandler) Invite(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req inviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Invite(r.Context(), membership.TargetInput{
		EstateID:       estateID,
		UserID:         req.UserID,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondTransition(w, r, http.StatusOK, res, err)
}

// RevokeInvite handles DELETE /estates/{estateID}/invites/{userID}.
func (h *EstateHandler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	h.onTarget(w, r, h.svc.RevokeInvite)
}

// AcceptInvite handles POST /estates/{estateID}/invites/accept.
func (h *EstateHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req acceptInviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.AcceptInvite(r.Context(), membership.AcceptInviteInput{
		EstateID:       estateID,
		Token:          req.Token,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondTransition(w, r, http.StatusOK, res, err)
}

// DeclineInvite handles POST /estates/{estateID}/invites/decline.
func (h *EstateHandler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	h.self(w, r, h.svc.DeclineInvite)
}

// GrantAdmin handles PUT /estates/{estateID}/admins/{userID}.
func (h *EstateHandler) GrantAdmin(w http.ResponseWriter, r *http.Request) {
	h.onTarget(w, r, h.svc.GrantAdmin)
}

// RevokeAdmin handles DELETE /estates/{estateID}/admins/{userID}.
func (h *EstateHandler) RevokeAdmin(w http.ResponseWriter, r *http.Request) {
	h.onTarget(w, r, h.svc.RevokeAdmin)
}

// Leave handles POST /estates/{estateID}/leave.
func (h *EstateHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.self(w, r, h.svc.Leave)
}

// Announce handles POST /estates/{estateID}/announcements.
func (h *EstateHandler) Announce(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req announceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Announce(r.Context(), membership.AnnounceInput{
		EstateID:       estateID,
		Message:        req.Message,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondTransition(w, r, http.StatusOK, res, err)
}

type selfOp func(ctx context.Context, input membership.EstateInput) (*membership.TransitionResult, error)

type targetOp func(ctx context.Context, input membership.TargetInput) (*membership.TransitionResult, error)

func (h *EstateHandler) self(w http.ResponseWriter, r *http.Request, op selfOp) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := op(r.Context(), membership.EstateInput{EstateID: estateID, IdempotencyKey: idempotencyKey(r)})
	h.respondTransition(w, r, http.StatusOK, res, err)
}

func (h *EstateHandler) onTarget(w http.ResponseWriter, r *http.Request, op targetOp) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	userID, err := pathUUID(r, "userID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := op(r.Context(), membership.TargetInput{
		EstateID:       estateID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey(r),
	})
	h.respondTransition(w, r, http.StatusOK, res, err)
}

func (h *EstateHandler) respondTransition(w http.ResponseWriter, r *http.Request, status int, res *membership.TransitionResult, err error) {
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if res.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, transitionResponse{
		Estate:        toEstateResponse(res.Estate),
		Notifications: res.Notifications,
		Replayed:      res.Replayed,
	})
}

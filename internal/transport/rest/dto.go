package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filatei/btorestate/internal/domain"
)

type estateResponse struct {
	ID              uuid.UUID                     `json:"id"`
	Name            string                        `json:"name"`
	Address         string                        `json:"address"`
	Type            domain.EstateType             `json:"type"`
	CreatedBy       uuid.UUID                     `json:"createdBy"`
	Members         []uuid.UUID                   `json:"members"`
	Admins          []uuid.UUID                   `json:"admins"`
	MemberCount     int                           `json:"memberCount"`
	PendingRequests []uuid.UUID                   `json:"pendingRequests"`
	InvitedUsers    []uuid.UUID                   `json:"invitedUsers"`
	InviteTokens    map[string]domain.InviteToken `json:"inviteTokens,omitempty"`
	Version         int64                         `json:"version"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

type transitionResponse struct {
	Estate        estateResponse        `json:"estate"`
	Notifications domain.DispatchReport `json:"notifications"`
	Replayed      bool                  `json:"replayed,omitempty"`
}

type relationshipResponse struct {
	EstateID     uuid.UUID           `json:"estateId"`
	Relationship domain.Relationship `json:"relationship"`
}

type paymentEntryResponse struct {
	ID         uuid.UUID            `json:"id"`
	Seq        int                  `json:"seq"`
	Amount     decimal.Decimal      `json:"amount"`
	Method     domain.PaymentMethod `json:"method"`
	UserID     uuid.UUID            `json:"userId"`
	ReceiptURL *string              `json:"receiptUrl,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
}

type chargeResponse struct {
	ID              uuid.UUID              `json:"id"`
	EstateID        uuid.UUID              `json:"estateId"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Amount          decimal.Decimal        `json:"amount"`
	PaidAmount      decimal.Decimal        `json:"paidAmount"`
	Outstanding     decimal.Decimal        `json:"outstanding"`
	DueDate         time.Time              `json:"dueDate"`
	Status          domain.ChargeStatus    `json:"status"`
	LastPaymentDate *time.Time             `json:"lastPaymentDate,omitempty"`
	PaymentMethod   *domain.PaymentMethod  `json:"paymentMethod,omitempty"`
	PaymentHistory  []paymentEntryResponse `json:"paymentHistory"`
	CreatedBy       uuid.UUID              `json:"createdBy"`
	Version         int64                  `json:"version"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type chargeResultResponse struct {
	Charge        chargeResponse        `json:"charge"`
	Notifications domain.DispatchReport `json:"notifications"`
}

type paymentResponse struct {
	Charge        chargeResponse        `json:"charge"`
	Entry         paymentEntryResponse  `json:"entry"`
	Notifications domain.DispatchReport `json:"notifications"`
	Replayed      bool                  `json:"replayed,omitempty"`
}

type notificationResponse struct {
	ID          uuid.UUID               `json:"id"`
	Type        domain.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	Read        bool                    `json:"read"`
	EstateID    *uuid.UUID              `json:"estateId,omitempty"`
	RequesterID *uuid.UUID              `json:"requesterId,omitempty"`
	InviteToken *string                 `json:"inviteToken,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	ReadAt      *time.Time              `json:"readAt,omitempty"`
}

type auditRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	Action        string    `json:"action"`
	ActorID       uuid.UUID `json:"actorId"`
	SubjectID     uuid.UUID `json:"subjectId"`
	EstateVersion int64     `json:"estateVersion"`
	MemberCount   int       `json:"memberCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type unreadCountResponse struct {
	Unread int `json:"unread"`
}

type markAllReadResponse struct {
	Updated int `json:"updated"`
}

func toEstateResponse(e *domain.Estate) estateResponse {
	resp := estateResponse{
		ID:              e.ID,
		Name:            e.Name,
		Address:         e.Address,
		Type:            e.Type,
		CreatedBy:       e.CreatedBy,
		Members:         nonNil(e.Members),
		Admins:          nonNil(e.Admins),
		MemberCount:     e.MemberCount,
		PendingRequests: nonNil(e.PendingRequests),
		InvitedUsers:    nonNil(e.InvitedUsers),
		Version:         e.Version,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if len(e.InviteTokens) > 0 {
		resp.InviteTokens = make(map[string]domain.InviteToken, len(e.InviteTokens))
		for userID, tok := range e.InviteTokens {
			resp.InviteTokens[userID.String()] = tok
		}
	}
	return resp
}

func toEstateList(estates []*domain.Estate) []estateResponse {
	out := make([]estateResponse, len(estates))
	for i, e := range estates {
		out[i] = toEstateResponse(e)
	}
	return out
}

func toPaymentEntryResponse(p domain.PaymentEntry) paymentEntryResponse {
	return paymentEntryResponse{
		ID:         p.ID,
		Seq:        p.Seq,
		Amount:     p.Amount,
		Method:     p.Method,
		UserID:     p.UserID,
		ReceiptURL: p.ReceiptURL,
		CreatedAt:  p.CreatedAt,
	}
}

func toChargeResponse(c *domain.ServiceCharge) chargeResponse {
	history := make([]paymentEntryResponse, len(c.PaymentHistory))
	for i, p := range c.PaymentHistory {
		history[i] = toPaymentEntryResponse(p)
	}
	return chargeResponse{
		ID:              c.ID,
		EstateID:        c.EstateID,
		Title:           c.Title,
		Description:     c.Description,
		Amount:          c.Amount,
		PaidAmount:      c.PaidAmount,
		Outstanding:     c.Outstanding(),
		DueDate:         c.DueDate,
		Status:          c.Status,
		LastPaymentDate: c.LastPaymentDate,
		PaymentMethod:   c.PaymentMethod,
		PaymentHistory:  history,
		CreatedBy:       c.CreatedBy,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toChargeList(charges []*domain.ServiceCharge) []chargeResponse {
	out := make([]chargeResponse, len(charges))
	for i, c := range charges {
		out[i] = toChargeResponse(c)
	}
	return out
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		EstateID:    n.EstateID,
		RequesterID: n.RequesterID,
		InviteToken: n.InviteToken,
		CreatedAt:   n.CreatedAt,
		ReadAt:      n.ReadAt,
	}
}

func toAuditList(records []domain.AuditRecord) []auditRecordResponse {
	out := make([]auditRecordResponse, len(records))
	for i, rec := range records {
		out[i] = auditRecordResponse{
			ID:            rec.ID,
			Action:        rec.Action,
			ActorID:       rec.ActorID,
			SubjectID:     rec.SubjectID,
			EstateVersion: rec.EstateVersion,
			MemberCount:   rec.MemberCount,
			CreatedAt:     rec.CreatedAt,
		}
	}
	return out
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

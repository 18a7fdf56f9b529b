package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is a user-visible alert. Only Read/ReadAt ever change, and only false→true.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Type        NotificationType
	Title       string
	Message     string
	Read        bool
	EstateID    *uuid.UUID
	RequesterID *uuid.UUID
	InviteToken *string
	// DedupKey ties the notification to the transition that caused it.
	// A recipient never holds two notifications with the same key.
	DedupKey  string
	CreatedAt time.Time
	ReadAt    *time.Time
}

// NotificationTemplate is the recipient-independent part of a notification.
type NotificationTemplate struct {
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	EstateID    *uuid.UUID       `json:"estateId,omitempty"`
	RequesterID *uuid.UUID       `json:"requesterId,omitempty"`
	InviteToken *string          `json:"inviteToken,omitempty"`
	DedupKey    string           `json:"dedupKey"`
}

// For builds the notification addressed to one recipient.
func (t NotificationTemplate) For(id, recipientID uuid.UUID, now time.Time) *Notification {
	return &Notification{
		ID:          id,
		RecipientID: recipientID,
		Type:        t.Type,
		Title:       t.Title,
		Message:     t.Message,
		EstateID:    t.EstateID,
		RequesterID: t.RequesterID,
		InviteToken: t.InviteToken,
		DedupKey:    t.DedupKey,
		CreatedAt:   now,
	}
}

// DispatchedNotification pairs a recipient with the notification written for them.
type DispatchedNotification struct {
	RecipientID    uuid.UUID `json:"recipientId"`
	NotificationID uuid.UUID `json:"notificationId"`
}

// DispatchFailure records a recipient whose write failed.
type DispatchFailure struct {
	RecipientID uuid.UUID `json:"recipientId"`
	Reason      string    `json:"reason"`
}

// DispatchReport is the secondary result of a committed transition.
type DispatchReport struct {
	Created []DispatchedNotification `json:"created"`

	// Duplicates are recipients that already held a notification with the same dedup key.
	Duplicates []uuid.UUID       `json:"duplicates,omitempty"`
	Failed     []DispatchFailure `json:"failed,omitempty"`
}

// NotificationIDs returns the ids of the notifications created.
func (r DispatchReport) NotificationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Created))
	for i, c := range r.Created {
		ids[i] = c.NotificationID
	}
	return ids
}

// OK reports whether every recipient was notified.
func (r DispatchReport) OK() bool { return len(r.Failed) == 0 }

// Outbound is a dispatch request kept alongside a committed transition.
type Outbound struct {
	Recipients []uuid.UUID          `json:"recipients"`
	Template   NotificationTemplate `json:"template"`
}

// TransitionRecord remembers a committed transition under its idempotency
// key so a retried request can be answered without re-applying it.
type TransitionRecord struct {
	Key         string          `json:"key"`
	Operation   string          `json:"operation"`
	ActorID     uuid.UUID       `json:"actorId"`
	Result      json.RawMessage `json:"result"`
	Outbound    []Outbound      `json:"outbound"`
	CommittedAt time.Time       `json:"committedAt"`
}

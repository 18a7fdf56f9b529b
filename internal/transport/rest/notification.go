package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/service/notification"
)

type inboxService interface {
	List(ctx context.Context, input notification.ListInput) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, input notification.MarkReadInput) (*domain.Notification, error)
	MarkAllRead(ctx context.Context) (int, error)
}

// NotificationHandler serves the caller's inbox.
type NotificationHandler struct {
	svc inboxService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc inboxService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

// List handles GET /notifications?unread=&limit=&offset=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		input notification.ListInput
		err   error
	)
	if input.UnreadOnly, err = queryBool(r, "unread"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]notificationResponse, len(items))
	for i, n := range items {
		out[i] = toNotificationResponse(n)
	}
	writeJSON(w, http.StatusOK, out)
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unreadCountResponse{Unread: n})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	n, err := h.svc.MarkRead(r.Context(), notification.MarkReadInput{NotificationID: id})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationResponse(n))
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markAllReadResponse{Updated: n})
}

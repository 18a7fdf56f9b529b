package membership

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

func to(recipients []uuid.UUID, tmpl domain.NotificationTemplate) []domain.Outbound {
	return []domain.Outbound{{Recipients: recipients, Template: tmpl}}
}

func estateNotice(e *domain.Estate, title, format string) domain.NotificationTemplate {
	estateID := e.ID
	return domain.NotificationTemplate{
		Type:     domain.NotificationTypeEstate,
		Title:    title,
		Message:  fmt.Sprintf(format, e.Name),
		EstateID: &estateID,
	}
}

func withRequester(tmpl domain.NotificationTemplate, userID uuid.UUID) domain.NotificationTemplate {
	tmpl.RequesterID = &userID
	return tmpl
}

func joinRequestedTemplate(e *domain.Estate, requester uuid.UUID) domain.NotificationTemplate {
	return withRequester(estateNotice(e, "New Join Request", "A user has requested to join %s"), requester)
}

func invitationTemplate(e *domain.Estate, token string) domain.NotificationTemplate {
	tmpl := estateNotice(e, "Estate Invitation", "You have been invited to join %s")
	tmpl.InviteToken = &token
	return tmpl
}

func announcementTemplate(e *domain.Estate, message string) domain.NotificationTemplate {
	estateID := e.ID
	return domain.NotificationTemplate{
		Type:     domain.NotificationTypeMessage,
		Title:    "Announcement from " + e.Name,
		Message:  message,
		EstateID: &estateID,
	}
}

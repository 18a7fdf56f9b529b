package payment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

func newChargeTemplate(e *domain.Estate, c *domain.ServiceCharge) domain.NotificationTemplate {
	estateID := e.ID
	return domain.NotificationTemplate{
		Type:     domain.NotificationTypePayment,
		Title:    "New Service Charge",
		Message:  fmt.Sprintf("A new service charge of %s has been added to %s", domain.FormatNaira(c.Amount), e.Name),
		EstateID: &estateID,
		DedupKey: "charge:" + c.ID.String(),
	}
}

func receiptUploadedTemplate(c *domain.ServiceCharge, entry domain.PaymentEntry) domain.NotificationTemplate {
	estateID, payer := c.EstateID, entry.UserID
	return domain.NotificationTemplate{
		Type:        domain.NotificationTypePayment,
		Title:       "Payment Receipt Uploaded",
		Message:     fmt.Sprintf("A payment receipt of %s has been uploaded for %s", domain.FormatNaira(entry.Amount), c.Title),
		EstateID:    &estateID,
		RequesterID: &payer,
		DedupKey:    "payment:" + entry.ID.String(),
	}
}

func paymentProcessedTemplate(c *domain.ServiceCharge, entry domain.PaymentEntry) domain.NotificationTemplate {
	estateID := c.EstateID
	method := entry.Method.String()
	return domain.NotificationTemplate{
		Type:     domain.NotificationTypePayment,
		Title:    fmt.Sprintf("%s Payment Processed", capitalize(method)),
		Message:  fmt.Sprintf("A %s payment of %s has been processed for %s", method, domain.FormatNaira(entry.Amount), c.Title),
		EstateID: &estateID,
		DedupKey: "payment:" + entry.ID.String(),
	}
}

func paymentConfirmedTemplate(c *domain.ServiceCharge) domain.NotificationTemplate {
	estateID := c.EstateID
	return domain.NotificationTemplate{
		Type:     domain.NotificationTypePayment,
		Title:    "Payment Confirmed",
		Message:  fmt.Sprintf("Your payment for %s has been confirmed. Status: %s", c.Title, c.Status),
		EstateID: &estateID,
		DedupKey: fmt.Sprintf("confirm:%s:%d", c.ID, c.Version),
	}
}

// paymentOutbound addresses the notifications of an accepted payment.
func paymentOutbound(e *domain.Estate, c *domain.ServiceCharge, entry domain.PaymentEntry) []domain.Outbound {
	if entry.Method.RequiresReceipt() {
		return []domain.Outbound{{
			Recipients: domain.RecipientsExcept(e.Admins, uuid.Nil),
			Template:   receiptUploadedTemplate(c, entry),
		}}
	}
	return []domain.Outbound{{
		Recipients: []uuid.UUID{entry.UserID},
		Template:   paymentProcessedTemplate(c, entry),
	}}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

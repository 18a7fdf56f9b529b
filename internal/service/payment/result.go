package payment

import "github.com/filatei/btorestate/internal/domain"

// PaymentResult is the outcome of SubmitPayment. Replayed is set when an
// earlier request with the same idempotency key already recorded the entry.
type PaymentResult struct {
	Charge        *domain.ServiceCharge
	Entry         domain.PaymentEntry
	Notifications domain.DispatchReport
	Replayed      bool
}

// ChargeResult is the outcome of CreateCharge and ConfirmReview.
type ChargeResult struct {
	Charge        *domain.ServiceCharge
	Notifications domain.DispatchReport
}

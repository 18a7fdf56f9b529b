package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filatei/btorestate/internal/domain"
)

const (
	maxTitleLen          = 200
	maxDescriptionLen    = 2000
	maxIdempotencyKeyLen = 128
)

// CreateChargeInput holds the parameters for creating a service charge.
type CreateChargeInput struct {
	EstateID    uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateChargeInput) Validate() error {
	var errs []domain.FieldError

	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
	}
	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", maxTitleLen)})
	}
	if len(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", maxDescriptionLen)})
	}
	if !i.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be greater than zero"})
	} else if !hasCents(i.Amount) {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "at most 2 decimal places"})
	}
	if i.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Receipt is an uploaded proof of a manual payment.
type Receipt struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmitPaymentInput holds the parameters for paying against a charge.
type SubmitPaymentInput struct {
	ChargeID       uuid.UUID
	Amount         decimal.Decimal
	Method         domain.PaymentMethod
	Receipt        *Receipt
	IdempotencyKey string
}

// Validate checks all fields before any I/O happens. An amount problem is
// reported as an invalid amount so callers can tell it apart.
func (i SubmitPaymentInput) Validate(maxReceiptBytes int64) error {
	if !i.Amount.IsPositive() {
		return domain.NewInvalidAmountError("must be greater than zero")
	}
	if !hasCents(i.Amount) {
		return domain.NewInvalidAmountError("at most 2 decimal places")
	}

	var errs []domain.FieldError
	if i.ChargeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "charge_id", Message: "required"})
	}
	if !i.Method.IsValid() {
		errs = append(errs, domain.FieldError{Field: "method", Message: "must be one of direct, manual, paystack, test"})
	}
	if i.Method.RequiresReceipt() && i.Receipt == nil {
		errs = append(errs, domain.FieldError{Field: "receipt", Message: "required for manual payments"})
	}
	if i.Receipt != nil {
		if !strings.HasPrefix(strings.ToLower(i.Receipt.ContentType), "image/") {
			errs = append(errs, domain.FieldError{Field: "receipt", Message: "must be an image"})
		}
		if len(i.Receipt.Data) == 0 {
			errs = append(errs, domain.FieldError{Field: "receipt", Message: "is empty"})
		}
		if int64(len(i.Receipt.Data)) > maxReceiptBytes {
			errs = append(errs, domain.FieldError{Field: "receipt", Message: fmt.Sprintf("max %d bytes", maxReceiptBytes)})
		}
	}
	if len(i.IdempotencyKey) > maxIdempotencyKeyLen {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: fmt.Sprintf("max %d characters", maxIdempotencyKeyLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListChargesInput holds the parameters for listing an estate's charges.
type ListChargesInput struct {
	EstateID uuid.UUID
	Status   *domain.ChargeStatus
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListChargesInput) Validate() error {
	var errs []domain.FieldError
	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of pending, partial, review, paid"})
	}
	if i.Limit < 0 || i.Limit > domain.MaxPageLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", domain.MaxPageLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

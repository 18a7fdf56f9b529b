package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentEntry is one append-only line of a charge's payment history.
type PaymentEntry struct {
	ID             uuid.UUID
	ChargeID       uuid.UUID
	Seq            int
	Amount         decimal.Decimal
	Method         PaymentMethod
	UserID         uuid.UUID
	ReceiptURL     *string
	IdempotencyKey *string
	CreatedAt      time.Time
}

// ServiceCharge is a billable item owed by the members of an estate.
type ServiceCharge struct {
	ID              uuid.UUID
	EstateID        uuid.UUID
	Title           string
	Description     string
	Amount          decimal.Decimal
	DueDate         time.Time
	PaidAmount      decimal.Decimal
	Status          ChargeStatus
	LastPaymentDate *time.Time
	PaymentMethod   *PaymentMethod
	PaymentHistory  []PaymentEntry
	CreatedBy       uuid.UUID
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentSubmission is a validated request to pay against a charge.
type PaymentSubmission struct {
	Amount         decimal.Decimal
	Method         PaymentMethod
	UserID         uuid.UUID
	ReceiptURL     *string
	IdempotencyKey *string
}

// NewServiceCharge returns a pending charge with nothing paid.
func NewServiceCharge(id, estateID, createdBy uuid.UUID, title, description string, amount decimal.Decimal, dueDate, now time.Time) *ServiceCharge {
	return &ServiceCharge{
		ID:             id,
		EstateID:       estateID,
		Title:          title,
		Description:    description,
		Amount:         amount,
		DueDate:        dueDate,
		PaidAmount:     decimal.Zero,
		Status:         ChargeStatusPending,
		PaymentHistory: []PaymentEntry{},
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Outstanding returns the amount still owed.
func (c *ServiceCharge) Outstanding() decimal.Decimal {
	return c.Amount.Sub(c.PaidAmount)
}

// NextChargeStatus picks the status after a payment brings the total to newPaid.
func NextChargeStatus(method PaymentMethod, newPaid, amount decimal.Decimal) ChargeStatus {
	switch {
	case method.RequiresReceipt():
		return ChargeStatusReview
	case newPaid.GreaterThanOrEqual(amount):
		return ChargeStatusPaid
	default:
		return ChargeStatusPartial
	}
}

// ApplyPayment appends a payment and moves the charge to its next status.
// It rejects non-positive amounts and any amount that would take paidAmount
// past amount; a rejected payment leaves the charge untouched.
func (c *ServiceCharge) ApplyPayment(p PaymentSubmission, entryID uuid.UUID, now time.Time) (PaymentEntry, error) {
	if !p.Amount.IsPositive() {
		return PaymentEntry{}, NewInvalidAmountError("must be greater than zero")
	}
	newPaid := c.PaidAmount.Add(p.Amount)
	if newPaid.GreaterThan(c.Amount) {
		return PaymentEntry{}, NewInvalidAmountError(
			fmt.Sprintf("exceeds outstanding balance of %s", c.Outstanding().StringFixed(2)))
	}

	method := p.Method
	paidAt := now
	entry := PaymentEntry{
		ID:             entryID,
		ChargeID:       c.ID,
		Seq:            len(c.PaymentHistory) + 1,
		Amount:         p.Amount,
		Method:         method,
		UserID:         p.UserID,
		ReceiptURL:     p.ReceiptURL,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      now,
	}

	c.PaidAmount = newPaid
	c.Status = NextChargeStatus(method, newPaid, c.Amount)
	c.LastPaymentDate = &paidAt
	c.PaymentMethod = &method
	c.PaymentHistory = append(c.PaymentHistory, entry)
	c.UpdatedAt = now

	if err := c.CheckInvariants(); err != nil {
		return PaymentEntry{}, err
	}
	return entry, nil
}

// ConfirmReview resolves a review charge into partial or paid.
func (c *ServiceCharge) ConfirmReview(now time.Time) error {
	if c.Status != ChargeStatusReview {
		return fmt.Errorf("%w: charge is %s, not awaiting review", ErrConflict, c.Status)
	}

	if c.PaidAmount.GreaterThanOrEqual(c.Amount) {
		c.Status = ChargeStatusPaid
	} else {
		c.Status = ChargeStatusPartial
	}
	c.UpdatedAt = now
	return c.CheckInvariants()
}

// EntryByIdempotencyKey finds the entry userID created under key. Keys are
// scoped per payer, so another member reusing the same key is a new payment.
func (c *ServiceCharge) EntryByIdempotencyKey(userID uuid.UUID, key string) (PaymentEntry, bool) {
	if key == "" {
		return PaymentEntry{}, false
	}
	for _, e := range c.PaymentHistory {
		if e.UserID == userID && e.IdempotencyKey != nil && *e.IdempotencyKey == key {
			return e, true
		}
	}
	return PaymentEntry{}, false
}

// LastManualPayer returns the payer of the most recent manual entry.
func (c *ServiceCharge) LastManualPayer() (uuid.UUID, bool) {
	for i := len(c.PaymentHistory) - 1; i >= 0; i-- {
		if c.PaymentHistory[i].Method == PaymentMethodManual {
			return c.PaymentHistory[i].UserID, true
		}
	}
	return uuid.Nil, false
}

// CheckInvariants verifies the ledger invariants. A failure wraps ErrInvariant.
func (c *ServiceCharge) CheckInvariants() error {
	violation := func(format string, args ...any) error {
		return fmt.Errorf("charge %s: %w: %s", c.ID, ErrInvariant, fmt.Sprintf(format, args...))
	}

	if !c.Amount.IsPositive() {
		return violation("amount %s is not positive", c.Amount)
	}
	if c.PaidAmount.IsNegative() || c.PaidAmount.GreaterThan(c.Amount) {
		return violation("paidAmount %s outside [0, %s]", c.PaidAmount, c.Amount)
	}

	sum := decimal.Zero
	for i, e := range c.PaymentHistory {
		if !e.Amount.IsPositive() {
			return violation("history entry %d has non-positive amount", i+1)
		}
		sum = sum.Add(e.Amount)
	}
	if !sum.Equal(c.PaidAmount) {
		return violation("history sums to %s, paidAmount is %s", sum, c.PaidAmount)
	}

	switch c.Status {
	case ChargeStatusPending:
		if !c.PaidAmount.IsZero() {
			return violation("pending with paidAmount %s", c.PaidAmount)
		}
	case ChargeStatusPartial:
		if !c.PaidAmount.IsPositive() || c.PaidAmount.GreaterThanOrEqual(c.Amount) {
			return violation("partial with paidAmount %s of %s", c.PaidAmount, c.Amount)
		}
	case ChargeStatusPaid:
		if c.PaidAmount.LessThan(c.Amount) {
			return violation("paid with paidAmount %s of %s", c.PaidAmount, c.Amount)
		}
	case ChargeStatusReview:
		if !c.PaidAmount.IsPositive() {
			return violation("review without any payment")
		}
	default:
		return violation("unknown status %q", c.Status)
	}

	return nil
}

// Clone returns a deep copy.
func (c *ServiceCharge) Clone() *ServiceCharge {
	cp := *c
	cp.PaymentHistory = slices.Clone(c.PaymentHistory)
	if c.LastPaymentDate != nil {
		t := *c.LastPaymentDate
		cp.LastPaymentDate = &t
	}
	if c.PaymentMethod != nil {
		m := *c.PaymentMethod
		cp.PaymentMethod = &m
	}
	return &cp
}

// FormatNaira renders an amount the way alerts show it, e.g. "₦10,000" or "₦2,500.50".
func FormatNaira(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.Equal(d.Truncate(0)) {
		s = d.Truncate(0).String()
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + "₦" + b.String()
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/service/payment"
)

type paymentService interface {
	CreateCharge(ctx context.Context, input payment.CreateChargeInput) (*payment.ChargeResult, error)
	GetCharge(ctx context.Context, chargeID uuid.UUID) (*domain.ServiceCharge, error)
	ListCharges(ctx context.Context, input payment.ListChargesInput) ([]*domain.ServiceCharge, error)
	ListOutstanding(ctx context.Context) ([]*domain.ServiceCharge, error)
	SubmitPayment(ctx context.Context, input payment.SubmitPaymentInput) (*payment.PaymentResult, error)
	ConfirmReview(ctx context.Context, chargeID uuid.UUID) (*payment.ChargeResult, error)
}

// multipartOverhead is the allowance for form fields and part headers on
// top of the receipt itself.
const multipartOverhead = 64 << 10

// ChargeHandler serves service charge and payment endpoints.
type ChargeHandler struct {
	svc             paymentService
	log             *slog.Logger
	maxReceiptBytes int64
}

// NewChargeHandler creates a ChargeHandler. Receipts larger than
// maxReceiptBytes are rejected by the service; the handler only reads one
// byte past the limit so it can tell.
func NewChargeHandler(svc paymentService, maxReceiptBytes int64, logger *slog.Logger) *ChargeHandler {
	return &ChargeHandler{svc: svc, log: logger.With("handler", "charge"), maxReceiptBytes: maxReceiptBytes}
}

// dueDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type dueDate time.Time

func (d *dueDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = dueDate(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("dueDate %q is neither RFC 3339 nor YYYY-MM-DD", s)
}

type createChargeRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     dueDate         `json:"dueDate"`
}

type submitPaymentRequest struct {
	Amount decimal.Decimal      `json:"amount"`
	Method domain.PaymentMethod `json:"method"`
}

// Create handles POST /estates/{estateID}/charges.
func (h *ChargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req createChargeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.CreateCharge(r.Context(), payment.CreateChargeInput{
		EstateID:    estateID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     time.Time(req.DueDate),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, chargeResultResponse{Charge: toChargeResponse(res.Charge), Notifications: res.Notifications})
}

// List handles GET /estates/{estateID}/charges?status=&limit=&offset=.
func (h *ChargeHandler) List(w http.ResponseWriter, r *http.Request) {
	estateID, err := pathUUID(r, "estateID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := payment.ListChargesInput{EstateID: estateID}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ChargeStatus(s)
		input.Status = &status
	}
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	charges, err := h.svc.ListCharges(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChargeList(charges))
}

// Outstanding handles GET /charges/outstanding.
func (h *ChargeHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	charges, err := h.svc.ListOutstanding(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChargeList(charges))
}

// Get handles GET /charges/{chargeID}.
func (h *ChargeHandler) Get(w http.ResponseWriter, r *http.Request) {
	chargeID, err := pathUUID(r, "chargeID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.GetCharge(r.Context(), chargeID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChargeResponse(c))
}

// SubmitPayment handles POST /charges/{chargeID}/payments. The body is JSON
// {amount, method}, or multipart/form-data with amount and method fields and
// the receipt image in a "receipt" file part.
func (h *ChargeHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	chargeID, err := pathUUID(r, "chargeID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := payment.SubmitPaymentInput{ChargeID: chargeID, IdempotencyKey: idempotencyKey(r)}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		err = h.readMultipartPayment(w, r, &input)
	} else {
		var req submitPaymentRequest
		err = decodeJSON(w, r, &req)
		input.Amount, input.Method = req.Amount, req.Method
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.SubmitPayment(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, paymentResponse{
		Charge:        toChargeResponse(res.Charge),
		Entry:         toPaymentEntryResponse(res.Entry),
		Notifications: res.Notifications,
		Replayed:      res.Replayed,
	})
}

func (h *ChargeHandler) readMultipartPayment(w http.ResponseWriter, r *http.Request, input *payment.SubmitPaymentInput) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxReceiptBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxReceiptBytes + 1); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("receipt", fmt.Sprintf("max %d bytes", h.maxReceiptBytes))
		}
		return domain.NewValidationError("body", "invalid multipart form")
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	amount, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("amount")))
	if err != nil {
		return domain.NewInvalidAmountError("must be a decimal number")
	}
	input.Amount = amount
	input.Method = domain.PaymentMethod(strings.TrimSpace(r.FormValue("method")))

	file, header, err := r.FormFile("receipt")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return domain.NewValidationError("receipt", "unreadable file part")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxReceiptBytes+1))
	if err != nil {
		return fmt.Errorf("read receipt: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	input.Receipt = &payment.Receipt{Filename: header.Filename, ContentType: contentType, Data: data}
	return nil
}

// ConfirmReview handles POST /charges/{chargeID}/confirm.
func (h *ChargeHandler) ConfirmReview(w http.ResponseWriter, r *http.Request) {
	chargeID, err := pathUUID(r, "chargeID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.ConfirmReview(r.Context(), chargeID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chargeResultResponse{Charge: toChargeResponse(res.Charge), Notifications: res.Notifications})
}

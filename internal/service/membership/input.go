package membership

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

const (
	maxNameLen           = 200
	maxAddressLen        = 500
	maxMessageLen        = 2000
	maxSearchLen         = 100
	maxIdempotencyKeyLen = 128
)

// CreateEstateInput holds the parameters for creating an estate.
type CreateEstateInput struct {
	Name           string
	Address        string
	Type           domain.EstateType
	IdempotencyKey string
}

// Validate checks all fields and collects all errors.
func (i CreateEstateInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: fmt.Sprintf("max %d characters", maxNameLen)})
	}
	if len(strings.TrimSpace(i.Address)) > maxAddressLen {
		errs = append(errs, domain.FieldError{Field: "address", Message: fmt.Sprintf("max %d characters", maxAddressLen)})
	}
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be one of residential, commercial, mixed"})
	}
	errs = checkKey(errs, i.IdempotencyKey)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// EstateInput addresses a transition the caller applies to themselves.
type EstateInput struct {
	EstateID       uuid.UUID
	IdempotencyKey string
}

// Validate checks all fields and collects all errors.
func (i EstateInput) Validate() error {
	var errs []domain.FieldError
	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
	}
	errs = checkKey(errs, i.IdempotencyKey)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TargetInput addresses a transition an admin applies to another user.
type TargetInput struct {
	EstateID       uuid.UUID
	UserID         uuid.UUID
	IdempotencyKey string
}

// Validate checks all fields and collects all errors.
func (i TargetInput) Validate() error {
	var errs []domain.FieldError
	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
	}
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	errs = checkKey(errs, i.IdempotencyKey)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AcceptInviteInput holds the parameters for redeeming an invitation.
type AcceptInviteInput struct {
	EstateID       uuid.UUID
	Token          string
	IdempotencyKey string
}

// Validate checks all fields and collects all errors.
func (i AcceptInviteInput) Validate() error {
	var errs []domain.FieldError
	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
	}
	if strings.TrimSpace(i.Token) == "" {
		errs = append(errs, domain.FieldError{Field: "token", Message: "required"})
	}
	errs = checkKey(errs, i.IdempotencyKey)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AnnounceInput holds the parameters for an announcement.
type AnnounceInput struct {
	EstateID       uuid.UUID
	Message        string
	IdempotencyKey string
}

// Validate checks all fields and collects all errors.
func (i AnnounceInput) Validate() error {
	var errs []domain.FieldError
	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
	}
	msg := strings.TrimSpace(i.Message)
	if msg == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(msg) > maxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: fmt.Sprintf("max %d characters", maxMessageLen)})
	}
	errs = checkKey(errs, i.IdempotencyKey)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DiscoverInput holds the parameters for browsing estates the caller has not joined.
type DiscoverInput struct {
	Search string
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i DiscoverInput) Validate() error {
	var errs []domain.FieldError
	if len(i.Search) > maxSearchLen {
		errs = append(errs, domain.FieldError{Field: "search", Message: fmt.Sprintf("max %d characters", maxSearchLen)})
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

// AuditInput pages through an estate's membership history.
type AuditInput struct {
	EstateID uuid.UUID
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i AuditInput) Validate() error {
	var errs []domain.FieldError
	if i.EstateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "estate_id", Message: "required"})
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

func checkKey(errs []domain.FieldError, key string) []domain.FieldError {
	if len(key) > maxIdempotencyKeyLen {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: fmt.Sprintf("max %d characters", maxIdempotencyKeyLen)})
	}
	return errs
}

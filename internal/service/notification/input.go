package notification

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
)

// ListInput holds the parameters for listing notifications.
// A zero Limit means the configured default.
type ListInput struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate(maxLimit int) error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", maxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MarkReadInput holds the parameters for marking a notification read.
type MarkReadInput struct {
	NotificationID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i MarkReadInput) Validate() error {
	if i.NotificationID == uuid.Nil {
		return domain.NewValidationError("notification_id", "required")
	}
	return nil
}

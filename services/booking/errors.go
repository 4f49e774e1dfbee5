package booking

import (
	"errors"
	"fmt"
)

// ValidationError is bad user input. It is handled where it is raised and
// rendered inline; it never aborts the rest of the flow.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s: %s", e.Field, e.Message)
}

// NewValidationError reports invalid input for a single field.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidationError reports whether err is a user-input failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IncompleteStepError reports a wizard step entered out of order. Required
// names the earliest step still missing input; the frontend redirects there.
type IncompleteStepError struct {
	Required Step
}

func (e *IncompleteStepError) Error() string {
	return fmt.Sprintf("incompleteStep: complete %q first", e.Required)
}

// NewIncompleteStep reports an out-of-order step entry.
func NewIncompleteStep(required Step) error {
	return &IncompleteStepError{Required: required}
}

// BookingNotFoundError is the confirmation page's genuine failure state: no
// durable record and no surviving draft for the payment reference.
type BookingNotFoundError struct {
	PaymentReference string
}

func (e *BookingNotFoundError) Error() string {
	return fmt.Sprintf("bookingNotFound: no booking for payment reference %q", e.PaymentReference)
}

// NewBookingNotFound reports an unresolvable payment reference.
func NewBookingNotFound(paymentReference string) error {
	return &BookingNotFoundError{PaymentReference: paymentReference}
}

// IsBookingNotFound reports whether err is the unresolvable-reference failure.
func IsBookingNotFound(err error) bool {
	var be *BookingNotFoundError
	return errors.As(err, &be)
}

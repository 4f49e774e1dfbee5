package promo

import (
	"errors"
	"fmt"
)

// PromoError is a claim/redemption failure with a stable code the frontend can
// branch on.
type PromoError struct {
	Code    string
	Message string
}

func (e *PromoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	codeAlreadyClaimed     = "alreadyClaimed"
	codeCodeInvalid        = "codeInvalid"
	codeScopeMismatch      = "scopeMismatch"
	codePromoNoLongerValid = "promoNoLongerValid"
)

// NewAlreadyClaimed reports a second claim for a code this session already holds.
func NewAlreadyClaimed(code string) error {
	return &PromoError{Code: codeAlreadyClaimed, Message: fmt.Sprintf("code %q is already claimed by this session", code)}
}

// NewCodeInvalid reports an unknown or inactive promo code.
func NewCodeInvalid(code string) error {
	return &PromoError{Code: codeCodeInvalid, Message: fmt.Sprintf("code %q is not valid", code)}
}

// NewScopeMismatch reports a code that does not apply to the chosen service.
func NewScopeMismatch(code, slug string) error {
	return &PromoError{Code: codeScopeMismatch, Message: fmt.Sprintf("code %q does not apply to service %q", code, slug)}
}

// NewPromoNoLongerValid reports a redemption that lost the conditional write:
// the claim was redeemed concurrently, expired, or revoked.
func NewPromoNoLongerValid(claimID string) error {
	return &PromoError{Code: codePromoNoLongerValid, Message: fmt.Sprintf("claim %q is no longer valid", claimID)}
}

// IsPromoNoLongerValid reports whether err is a lost-redemption failure.
func IsPromoNoLongerValid(err error) bool {
	var pe *PromoError
	return errors.As(err, &pe) && pe.Code == codePromoNoLongerValid
}

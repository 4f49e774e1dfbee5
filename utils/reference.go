package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// randomToken generates a secure random token of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func randomToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > length {
		token = token[:length]
	}
	return token, nil
}

// GenerateBookingReference produces the human-readable reference printed on
// confirmations and emails, e.g. "SPK-4K7Q2M".
func GenerateBookingReference() (string, error) {
	token, err := randomToken(6)
	if err != nil {
		return "", err
	}
	return "SPK-" + token, nil
}

// GeneratePaymentReference produces the opaque reference handed to the payment
// provider and used to look the booking up on the confirmation page.
func GeneratePaymentReference() (string, error) {
	token, err := randomToken(20)
	if err != nil {
		return "", err
	}
	return "pay_" + token, nil
}

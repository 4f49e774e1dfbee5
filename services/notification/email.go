package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	netmail "net/mail"
	"time"

	"go.uber.org/zap"

	"sparklean/models"
)

// EmailNotificationService sends transactional email through an HTTP mail API.
type EmailNotificationService struct {
	APIKey     string
	APIBaseURL string
	From       string
	HTTPClient *http.Client
}

// NewEmailNotificationService creates a mail-API backed notification service.
func NewEmailNotificationService(apiKey, apiBaseURL, from string) *EmailNotificationService {
	return &EmailNotificationService{
		APIKey:     apiKey,
		APIBaseURL: apiBaseURL,
		From:       from,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type emailPayload struct {
	FromAddress string            `json:"fromAddress"`
	ToAddress   string            `json:"toAddress"`
	Subject     string            `json:"subject"`
	Template    string            `json:"templateName"`
	Props       map[string]string `json:"templateProps"`
}

// SendBookingConfirmation emails the booking summary to the customer.
func (s *EmailNotificationService) SendBookingConfirmation(ctx context.Context, to string, booking *models.Booking) error {
	if _, err := netmail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	payload := emailPayload{
		FromAddress: s.From,
		ToAddress:   to,
		Subject:     fmt.Sprintf("Your cleaning is booked (%s)", booking.Reference),
		Template:    "booking-confirmation",
		Props: map[string]string{
			"reference":   booking.Reference,
			"serviceName": booking.ServiceName,
			"date":        booking.Date,
			"time":        booking.Time,
			"location":    booking.Location,
			"total":       fmt.Sprintf("%.2f", booking.Pricing.Total),
		},
	}
	return s.send(ctx, payload)
}

func (s *EmailNotificationService) send(ctx context.Context, payload emailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIBaseURL+"/email/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(snippet))
	}

	zap.L().Info("confirmation email accepted",
		zap.String("to", payload.ToAddress),
		zap.String("subject", payload.Subject))
	return nil
}

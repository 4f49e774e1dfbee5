package booking

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"

	"sparklean/models"
)

// PaymentProvider turns a finished booking into a hosted checkout URL.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, booking *models.Booking) (string, error)
}

// StripeCheckoutProvider creates Stripe hosted checkout sessions. The global
// stripe.Key is set once at startup from config.
type StripeCheckoutProvider struct {
	Currency  string
	ReturnURL string
}

func (p *StripeCheckoutProvider) CreateCheckout(ctx context.Context, booking *models.Booking) (string, error) {
	amount := int64(math.Round(booking.Pricing.Total * 100))

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(booking.PaymentReference),
		SuccessURL:        stripe.String(fmt.Sprintf("%s?ref=%s", p.ReturnURL, booking.PaymentReference)),
		CancelURL:         stripe.String(p.ReturnURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(booking.ServiceName),
						Description: stripe.String(fmt.Sprintf("Booking %s on %s at %s", booking.Reference, booking.Date, booking.Time)),
					},
				},
			},
		},
	}
	params.Context = ctx
	if booking.Email != "" {
		params.CustomerEmail = stripe.String(booking.Email)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -source=payment.go -destination=mock_payment.go -package=domain

// CheckoutSessionRequest asks the payments API for a hosted checkout page.
type CheckoutSessionRequest struct {
	PriceID    string            `json:"priceId"`
	CustomerID string            `json:"customerId,omitempty"`
	SuccessURL string            `json:"successUrl"`
	CancelURL  string            `json:"cancelUrl"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Validate checks that all required fields are present.
func (r CheckoutSessionRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.PriceID) == "" {
		missing = append(missing, "priceId")
	}
	if strings.TrimSpace(r.SuccessURL) == "" {
		missing = append(missing, "successUrl")
	}
	if strings.TrimSpace(r.CancelURL) == "" {
		missing = append(missing, "cancelUrl")
	}
	if len(missing) > 0 {
		return WrapInvalidRequest("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CheckoutSession is the created session; URL is where the customer is redirected.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentGateway creates checkout sessions with the external payments API.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
}

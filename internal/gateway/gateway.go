package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
)

var (
	// ErrPaymentFailed generic upstream failure
	ErrPaymentFailed = errors.New("payment gateway request failed")
	// ErrAmountMismatch verification found a different amount than charged
	ErrAmountMismatch = errors.New("payment amount mismatch")
)

// PaymentGateway abstracts a mobile money provider.
type PaymentGateway interface {
	// Provider returns the provider identifier
	Provider() domain.PaymentMethod

	// Prepare initiates a payment and returns the redirect URL the
	// customer completes it at.
	Prepare(ctx context.Context, req *PrepareRequest) (*PrepareResponse, error)

	// Verify confirms a payment's final amount with the provider.
	Verify(ctx context.Context, externalRef string, amount int64) error

	// ParseCallback decodes a provider webhook payload.
	ParseCallback(payload []byte) (*CallbackResult, error)
}

// PrepareRequest payment initiation request
type PrepareRequest struct {
	Reference   string
	Amount      int64
	Currency    string
	Description string
	Phone       string
	Email       string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
}

// PrepareResponse payment initiation response
type PrepareResponse struct {
	ExternalRef string
	RedirectURL string
}

// CallbackResult decoded webhook outcome
type CallbackResult struct {
	Reference   string
	ExternalRef string
	Amount      int64
	Status      domain.TransactionStatus
	RawPayload  string
}

// VerifyWithBackoff retries Verify with doubling delays for transient
// upstream failures. Attempts are bounded; an amount mismatch is final
// and not retried.
func VerifyWithBackoff(ctx context.Context, g PaymentGateway, externalRef string, amount int64) error {
	const maxAttempts = 5
	delay := 2 * time.Second

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = g.Verify(ctx, externalRef, amount)
		if err == nil || errors.Is(err, ErrAmountMismatch) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/config"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
)

// WaveGateway Wave checkout implementation
type WaveGateway struct {
	cfg        config.WaveConfig
	httpClient *http.Client
}

// NewWaveGateway creates a Wave gateway
func NewWaveGateway(cfg config.WaveConfig) *WaveGateway {
	return &WaveGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Provider returns the provider identifier
func (g *WaveGateway) Provider() domain.PaymentMethod {
	return domain.PaymentWave
}

type waveCheckoutRequest struct {
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	ErrorURL        string `json:"error_url"`
	SuccessURL      string `json:"success_url"`
	ClientReference string `json:"client_reference"`
}

type waveCheckoutResponse struct {
	ID              string `json:"id"`
	WaveLaunchURL   string `json:"wave_launch_url"`
	CheckoutStatus  string `json:"checkout_status"`
	ClientReference string `json:"client_reference"`
}

// Prepare creates a Wave checkout session
func (g *WaveGateway) Prepare(ctx context.Context, req *PrepareRequest) (*PrepareResponse, error) {
	body, err := json.Marshal(waveCheckoutRequest{
		Amount:          strconv.FormatInt(req.Amount, 10),
		Currency:        req.Currency,
		ErrorURL:        req.CancelURL,
		SuccessURL:      req.ReturnURL,
		ClientReference: req.Reference,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.cfg.APIBaseURL+"/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("wave checkout failed (%d): %w", resp.StatusCode, ErrPaymentFailed)
	}

	var waveResp waveCheckoutResponse
	if err := json.Unmarshal(respBody, &waveResp); err != nil {
		return nil, err
	}

	return &PrepareResponse{
		ExternalRef: waveResp.ID,
		RedirectURL: waveResp.WaveLaunchURL,
	}, nil
}

type waveSessionStatus struct {
	ID             string `json:"id"`
	CheckoutStatus string `json:"checkout_status"`
	PaymentStatus  string `json:"payment_status"`
	Amount         string `json:"amount"`
}

// Verify fetches the checkout session and checks status and amount
func (g *WaveGateway) Verify(ctx context.Context, externalRef string, amount int64) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.cfg.APIBaseURL+"/checkout/sessions/"+externalRef, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrPaymentFailed
	}

	var session waveSessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return err
	}
	if session.PaymentStatus != "succeeded" {
		return fmt.Errorf("wave payment status %s: %w", session.PaymentStatus, ErrPaymentFailed)
	}
	paid, err := strconv.ParseInt(session.Amount, 10, 64)
	if err != nil {
		return err
	}
	if paid != amount {
		return ErrAmountMismatch
	}
	return nil
}

type waveWebhook struct {
	Type string `json:"type"`
	Data struct {
		ID              string `json:"id"`
		Amount          string `json:"amount"`
		ClientReference string `json:"client_reference"`
		PaymentStatus   string `json:"payment_status"`
	} `json:"data"`
}

// ParseCallback decodes a Wave webhook event
func (g *WaveGateway) ParseCallback(payload []byte) (*CallbackResult, error) {
	var event waveWebhook
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}

	amount, _ := strconv.ParseInt(event.Data.Amount, 10, 64)
	status := domain.TransactionFailed
	if event.Data.PaymentStatus == "succeeded" {
		status = domain.TransactionSuccess
	}

	return &CallbackResult{
		Reference:   event.Data.ClientReference,
		ExternalRef: event.Data.ID,
		Amount:      amount,
		Status:      status,
		RawPayload:  string(payload),
	}, nil
}

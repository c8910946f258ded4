package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/config"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
)

// OrangeMoneyGateway Orange Money WebPay implementation
type OrangeMoneyGateway struct {
	cfg        config.OrangeMoneyConfig
	httpClient *http.Client
}

// NewOrangeMoneyGateway creates an Orange Money gateway
func NewOrangeMoneyGateway(cfg config.OrangeMoneyConfig) *OrangeMoneyGateway {
	return &OrangeMoneyGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Provider returns the provider identifier
func (g *OrangeMoneyGateway) Provider() domain.PaymentMethod {
	return domain.PaymentOrangeMoney
}

type omPaymentRequest struct {
	MerchantKey string `json:"merchant_key"`
	Currency    string `json:"currency"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	NotifURL    string `json:"notif_url"`
	Lang        string `json:"lang"`
	Reference   string `json:"reference"`
}

type omPaymentResponse struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	PayToken   string `json:"pay_token"`
	PaymentURL string `json:"payment_url"`
	NotifToken string `json:"notif_token"`
}

type omErrorResponse struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Prepare calls the WebPay payment endpoint and returns the payment URL
func (g *OrangeMoneyGateway) Prepare(ctx context.Context, req *PrepareRequest) (*PrepareResponse, error) {
	body, err := json.Marshal(omPaymentRequest{
		MerchantKey: g.cfg.MerchantKey,
		Currency:    req.Currency,
		OrderID:     req.Reference,
		Amount:      req.Amount,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
		NotifURL:    req.NotifyURL,
		Lang:        "fr",
		Reference:   req.Description,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.cfg.APIBaseURL+"/webpayment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.AuthHeader)
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

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp omErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("orange money webpayment failed: %s - %s", errResp.Message, errResp.Description)
		}
		return nil, ErrPaymentFailed
	}

	var omResp omPaymentResponse
	if err := json.Unmarshal(respBody, &omResp); err != nil {
		return nil, err
	}

	return &PrepareResponse{
		ExternalRef: omResp.PayToken,
		RedirectURL: omResp.PaymentURL,
	}, nil
}

type omStatusResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

// Verify checks the transaction status and amount with Orange Money
func (g *OrangeMoneyGateway) Verify(ctx context.Context, externalRef string, amount int64) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/transactionstatus?pay_token=%s", g.cfg.APIBaseURL, externalRef), nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.AuthHeader)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrPaymentFailed
	}

	var status omStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return err
	}
	if status.Status != "SUCCESS" {
		return fmt.Errorf("orange money status %s: %w", status.Status, ErrPaymentFailed)
	}
	if status.Amount != amount {
		return ErrAmountMismatch
	}
	return nil
}

type omCallback struct {
	Status   string `json:"status"`
	NotifToken string `json:"notif_token"`
	TxnID    string `json:"txnid"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
}

// ParseCallback decodes the Orange Money notification payload
func (g *OrangeMoneyGateway) ParseCallback(payload []byte) (*CallbackResult, error) {
	var cb omCallback
	if err := json.Unmarshal(payload, &cb); err != nil {
		return nil, err
	}

	status := domain.TransactionFailed
	if cb.Status == "SUCCESS" {
		status = domain.TransactionSuccess
	}

	return &CallbackResult{
		Reference:   cb.OrderID,
		ExternalRef: cb.TxnID,
		Amount:      cb.Amount,
		Status:      status,
		RawPayload:  string(payload),
	}, nil
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
)

// Client is the slice of the external payment provider the core needs:
// open a hosted checkout session, then ask what became of it.
type Client interface {
	CreateCheckoutSession(ctx context.Context, orderID string, amount decimal.Decimal, returnURL string) (models.PaymentSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (models.PaymentSession, error)
}

type HTTPClient struct {
	addr   string
	client *http.Client
}

func NewHTTPClient(addr string) *HTTPClient {
	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     60 * time.Second,
		},
		Timeout: 15 * time.Second,
	}

	return &HTTPClient{addr: addr, client: client}
}

type createSessionRequest struct {
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	ReturnURL string `json:"return_url"`
}

type sessionResponse struct {
	SessionID     string `json:"session_id"`
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	RedirectURL   string `json:"redirect_url"`
}

func (hc *HTTPClient) CreateCheckoutSession(ctx context.Context, orderID string, amount decimal.Decimal, returnURL string) (models.PaymentSession, error) {
	body, err := json.Marshal(createSessionRequest{
		OrderID:   orderID,
		Amount:    amount.StringFixed(2),
		ReturnURL: returnURL,
	})
	if err != nil {
		return models.PaymentSession{}, fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/checkout/sessions", hc.addr), bytes.NewReader(body))
	if err != nil {
		return models.PaymentSession{}, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return hc.doSession(req)
}

func (hc *HTTPClient) GetSessionStatus(ctx context.Context, sessionID string) (models.PaymentSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/checkout/sessions/%s", hc.addr, sessionID), nil)
	if err != nil {
		return models.PaymentSession{}, fmt.Errorf("create request failed: %w", err)
	}

	return hc.doSession(req)
}

func (hc *HTTPClient) doSession(req *http.Request) (models.PaymentSession, error) {
	resp, err := hc.client.Do(req)
	if err != nil {
		return models.PaymentSession{}, fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return models.PaymentSession{}, fmt.Errorf("%w: gateway returned %d", apperrors.ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.PaymentSession{}, fmt.Errorf("gateway rejected request with status %d", resp.StatusCode)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return models.PaymentSession{}, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return models.PaymentSession{
		ID:            sr.SessionID,
		OrderID:       sr.OrderID,
		Status:        models.SessionStatus(sr.Status),
		PaymentStatus: models.SessionPaymentStatus(sr.PaymentStatus),
		RedirectURL:   sr.RedirectURL,
	}, nil
}

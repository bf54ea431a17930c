package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// GatewayClient calls the hosted payment-gateway checkout API used by the
// public storefront.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewGatewayClient creates a payment-gateway client.
func NewGatewayClient(cfg config.ServiceConfig, logger *logging.Logger) *GatewayClient {
	return &GatewayClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CheckoutRequest asks the gateway to open a checkout for a comanda total.
type CheckoutRequest struct {
	ComandaID string  `json:"comanda_id"`
	Amount    float64 `json:"amount"`
	Customer  string  `json:"customer"`
}

// CheckoutResponse is the gateway's created checkout.
type CheckoutResponse struct {
	CheckoutID string `json:"checkout_id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}

// CreateCheckout opens a gateway checkout for a storefront comanda.
func (c *GatewayClient) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/checkouts", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Gateway checkout request failed", logging.Fields{
			"comanda_id": req.ComandaID,
			"error":      err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var result CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	c.logger.Info("Gateway checkout created", logging.Fields{
		"comanda_id":  req.ComandaID,
		"checkout_id": result.CheckoutID,
	})
	return &result, nil
}

// GetCheckoutStatus fetches the current status of a gateway checkout.
func (c *GatewayClient) GetCheckoutStatus(ctx context.Context, checkoutID string) (string, error) {
	url := fmt.Sprintf("%s/v1/checkouts/%s", c.baseURL, checkoutID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Status, nil
}

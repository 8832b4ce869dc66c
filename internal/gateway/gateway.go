// Package gateway wraps the external payment provider. The core only depends
// on the Client interface; the HTTP implementation lives here so signature
// verification stays in one place.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client interface {
	// CreateOrder registers an intent-to-charge with the provider and
	// returns the provider's order id. The customer completes the charge
	// against that id on the provider's checkout page.
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error)
	// VerifySignature checks the HMAC the provider attaches to a completed
	// payment callback.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	// Refund asks the provider to return amountCents of a captured payment
	// and returns the provider's refund id.
	Refund(ctx context.Context, gatewayPaymentID string, amountCents int64) (string, error)
}

type httpClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewHTTPClient(baseURL, keyID, keySecret string, timeout time.Duration) Client {
	return &httpClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: timeout},
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID string `json:"id"`
}

func (c *httpClient) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error) {
	var resp orderResponse
	err := c.post(ctx, "/v1/orders", orderRequest{Amount: amountCents, Currency: currency, Receipt: receipt}, &resp)
	if err != nil {
		return "", fmt.Errorf("create gateway order: %w", err)
	}
	return resp.ID, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// key secret and compares in constant time.
func (c *httpClient) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type refundRequest struct {
	Amount int64 `json:"amount"`
}

type refundResponse struct {
	ID string `json:"id"`
}

func (c *httpClient) Refund(ctx context.Context, gatewayPaymentID string, amountCents int64) (string, error) {
	var resp refundResponse
	path := fmt.Sprintf("/v1/payments/%s/refund", gatewayPaymentID)
	if err := c.post(ctx, path, refundRequest{Amount: amountCents}, &resp); err != nil {
		return "", fmt.Errorf("gateway refund: %w", err)
	}
	return resp.ID, nil
}

func (c *httpClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

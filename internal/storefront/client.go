package storefront

import (
	"fmt"
	"time"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/pkg/httpclient"
)

// APIClient is the OrderPlacer over the order intake HTTP API.
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewAPIClient creates a client for the intake API at baseURL, e.g.
// "http://localhost:3000".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{baseURL: baseURL, timeout: 15 * time.Second}
}

// PlaceOrder posts the draft to POST /api/orders and returns the
// server-assigned order ID. Transport failures are retried; a 4xx
// rejection is returned with the server's kind and message.
func (c *APIClient) PlaceOrder(draft *models.OrderDraft) (string, error) {
	resp, err := httpclient.Post(c.baseURL + "/api/orders").
		Body(draft).
		Timeout(c.timeout).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return "", err
	}

	if !resp.OK() {
		var rejection struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if jsonErr := resp.JSON(&rejection); jsonErr == nil && rejection.Error != "" {
			return "", fmt.Errorf("storefront: order rejected (%s): %s", rejection.Error, rejection.Message)
		}
		return "", fmt.Errorf("storefront: order submission failed with status %d", resp.StatusCode)
	}

	var accepted struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
	}
	if err := resp.JSON(&accepted); err != nil {
		return "", err
	}
	if accepted.OrderID == "" {
		return "", fmt.Errorf("storefront: intake response carried no order ID")
	}

	return accepted.OrderID, nil
}

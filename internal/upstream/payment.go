package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// CreateOrder opens a gateway order for the package and returns the order
// descriptor plus the platform-side payment record ID the verify step needs.
func (c *Client) CreateOrder(ctx context.Context, token, packageID string) (*Order, string, error) {
	var out struct {
		Order     *Order `json:"order"`
		PaymentID string `json:"paymentId"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/payment/create-order", token, map[string]string{"packageId": packageID}, &out)
	if err != nil {
		return nil, "", fmt.Errorf("create order: %w", err)
	}
	if out.Order == nil || out.PaymentID == "" {
		return nil, "", &apiError{Status: http.StatusBadGateway, Message: "invalid order response"}
	}
	return out.Order, out.PaymentID, nil
}

// VerifyPaymentRequest carries the checkout widget's completion fields.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	PaymentID         string `json:"paymentId"`
}

// VerifyPayment asks the platform to verify the gateway signature and
// activate the package.
func (c *Client) VerifyPayment(ctx context.Context, token string, req VerifyPaymentRequest) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/payment/verify-payment", token, req, &out); err != nil {
		return false, fmt.Errorf("verify payment: %w", err)
	}
	return out.Success, nil
}

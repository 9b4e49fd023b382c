package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// SignIn asks the platform to send an OTP to the account's email.
func (c *Client) SignIn(ctx context.Context, email, role string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": email,
		"role":  role,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("request otp: %w", err)
	}
	return out.Message, nil
}

// VerifyAccount completes sign-in with the OTP and returns the bearer token.
func (c *Client) VerifyAccount(ctx context.Context, email, role, otp string) (string, error) {
	var out struct {
		Token string `json:"token"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-account", "", map[string]string{
		"email": email,
		"role":  role,
		"otp":   otp,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	if out.Token == "" {
		return "", &apiError{Status: http.StatusUnauthorized, Message: "no token in response"}
	}
	return out.Token, nil
}

// AdminSignIn requests an OTP for the admin role on the admin endpoint. The
// role rides along in the body even though the endpoint implies it.
func (c *Client) AdminSignIn(ctx context.Context, email string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/admin/signin", "", map[string]string{
		"email": email,
		"role":  "admin",
	}, &out)
	if err != nil {
		return "", fmt.Errorf("request admin otp: %w", err)
	}
	return out.Message, nil
}

// AdminVerifyAccount completes admin sign-in on the admin verify endpoint.
func (c *Client) AdminVerifyAccount(ctx context.Context, email, otp string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/admin/verify-account", "", map[string]string{
		"email": email,
		"role":  "admin",
		"otp":   otp,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("verify admin otp: %w", err)
	}
	if out.Token == "" {
		return "", &apiError{Status: http.StatusUnauthorized, Message: "no token in response"}
	}
	return out.Token, nil
}

// SignUp registers a new account, optionally under a referral code.
func (c *Client) SignUp(ctx context.Context, name, email, phone, referralCode string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":         name,
		"email":        email,
		"phone":        phone,
		"referralCode": referralCode,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("sign up: %w", err)
	}
	return out.Message, nil
}

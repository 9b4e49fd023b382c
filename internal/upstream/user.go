package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Dashboard returns the tile counters for the user home page.
func (c *Client) Dashboard(ctx context.Context, token string) (*DashboardData, error) {
	var out struct {
		Data DashboardData `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/dashboard", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch dashboard: %w", err)
	}
	return &out.Data, nil
}

// UserTasks returns the user's weekly task list plus an optional banner
// message from the platform.
func (c *Client) UserTasks(ctx context.Context, token string) ([]Task, string, error) {
	var out struct {
		Data    []Task `json:"data"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/tasks", token, nil, &out); err != nil {
		return nil, "", fmt.Errorf("fetch tasks: %w", err)
	}
	return out.Data, out.Message, nil
}

// CompleteTask marks one task done.
func (c *Client) CompleteTask(ctx context.Context, token, taskID string) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/user/complete-task", token, map[string]string{"taskId": taskID}, nil)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

func (c *Client) Profile(ctx context.Context, token string) (*UserProfile, error) {
	var out struct {
		Data UserProfile `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &out.Data, nil
}

// UpdateProfile submits the complete-profile form fields.
func (c *Client) UpdateProfile(ctx context.Context, token string, fields map[string]string) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/profile", token, fields, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (c *Client) WalletHistory(ctx context.Context, token string) (*WalletData, error) {
	var out struct {
		Data WalletData `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/wallet-history", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch wallet history: %w", err)
	}
	return &out.Data, nil
}

func (c *Client) ReferralPage(ctx context.Context, token string) (*ReferralData, error) {
	var out struct {
		Data ReferralData `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/referral-page", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch referral page: %w", err)
	}
	return &out.Data, nil
}

func (c *Client) PromotionalIncome(ctx context.Context, token string) (*PromotionalIncome, error) {
	var out struct {
		Data PromotionalIncome `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/promotional-income", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch promotional income: %w", err)
	}
	return &out.Data, nil
}

// UserPackages lists the packages available for purchase.
func (c *Client) UserPackages(ctx context.Context, token string) ([]Package, error) {
	var out struct {
		Data []Package `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/packages", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch packages: %w", err)
	}
	return out.Data, nil
}

// KYCUploadFile is one document relayed to the KYC upload endpoint.
type KYCUploadFile struct {
	Field    string
	Filename string
	Content  []byte
}

// UploadKYC relays the KYC form as multipart, exactly as the platform's
// upload endpoint expects it from the browser.
func (c *Client) UploadKYC(ctx context.Context, token, aadharNumber, panNumber string, files []KYCUploadFile) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("aadharNumber", aadharNumber); err != nil {
		return fmt.Errorf("write field: %w", err)
	}
	if err := mw.WriteField("panNumber", panNumber); err != nil {
		return fmt.Errorf("write field: %w", err)
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("write form file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/user/kyc/upload", &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", token)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload kyc: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		ae := &apiError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			ae.Message = envelope.Message
		}
		return ae
	}
	return nil
}

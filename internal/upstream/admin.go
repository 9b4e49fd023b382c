package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AdminUsers lists every user plus the current KYC auto-approve toggle.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]User, bool, error) {
	var out struct {
		Data           []User `json:"data"`
		KycAutoApprove bool   `json:"kycAutoApprove"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/users", token, nil, &out); err != nil {
		return nil, false, fmt.Errorf("fetch users: %w", err)
	}
	return out.Data, out.KycAutoApprove, nil
}

func (c *Client) ApproveKYC(ctx context.Context, token, userID string) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/users/kyc/approve", token, map[string]string{"userId": userID}, nil)
	if err != nil {
		return fmt.Errorf("approve kyc: %w", err)
	}
	return nil
}

func (c *Client) ApproveAllKYC(ctx context.Context, token string) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/users/kyc/approve-all", token, nil, nil); err != nil {
		return fmt.Errorf("approve all kyc: %w", err)
	}
	return nil
}

func (c *Client) SetKYCAutoApprove(ctx context.Context, token string, enable bool) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/users/kyc/auto-approve", token, map[string]bool{"enable": enable}, nil)
	if err != nil {
		return fmt.Errorf("toggle kyc auto-approve: %w", err)
	}
	return nil
}

// AdminTasks returns one page of task templates.
func (c *Client) AdminTasks(ctx context.Context, token string, page, limit int) ([]AdminTask, *Pagination, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out struct {
		Data       []AdminTask `json:"data"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/tasks?"+q.Encode(), token, nil, &out); err != nil {
		return nil, nil, fmt.Errorf("fetch admin tasks: %w", err)
	}
	return out.Data, out.Pagination, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, task TaskInput) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/tasks", token, task, nil); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// CreateTasks submits a bulk-parsed batch in one request.
func (c *Client) CreateTasks(ctx context.Context, token string, tasks []TaskInput) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/tasks/multiple", token, map[string][]TaskInput{"tasks": tasks}, nil)
	if err != nil {
		return fmt.Errorf("create tasks: %w", err)
	}
	return nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/admin/tasks/"+id, token, nil, nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (c *Client) DeleteSelectedTasks(ctx context.Context, token string, ids []string) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/tasks/delete/selected", token, map[string][]string{"ids": ids}, nil)
	if err != nil {
		return fmt.Errorf("delete selected tasks: %w", err)
	}
	return nil
}

func (c *Client) DeleteAllTasks(ctx context.Context, token string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/admin/tasks/delete/all", token, nil, nil); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	return nil
}

func (c *Client) AdminPackages(ctx context.Context, token string) ([]Package, error) {
	var out struct {
		Data []Package `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/packages", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch admin packages: %w", err)
	}
	return out.Data, nil
}

// PackageInput carries the create-package form.
type PackageInput struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	TasksPerDay int      `json:"tasksPerDay"`
	TaskRate    float64  `json:"taskRate"`
	Features    []string `json:"features"`
	BV          string   `json:"bv"`
}

func (c *Client) CreatePackage(ctx context.Context, token string, pkg PackageInput) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/packages", token, pkg, nil); err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	return nil
}

func (c *Client) DeletePackage(ctx context.Context, token, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/admin/packages/"+id, token, nil, nil); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

func (c *Client) AdminPayments(ctx context.Context, token string) ([]Payment, error) {
	var out struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Data    []Payment `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/users/payments", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}
	if !out.Success && out.Message != "" {
		return nil, &apiError{Status: http.StatusOK, Message: out.Message}
	}
	return out.Data, nil
}

// UserTree fetches the placement subtree rooted at the given user.
func (c *Client) UserTree(ctx context.Context, token, userID string) (*TreeNode, error) {
	var out struct {
		Data TreeNode `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/users/tree/"+userID, token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch user tree: %w", err)
	}
	return &out.Data, nil
}

// RootUsers lists the users at the top of each placement tree.
func (c *Client) RootUsers(ctx context.Context, token string) ([]RootUser, error) {
	var out struct {
		Data []RootUser `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/users/roots", token, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch root users: %w", err)
	}
	return out.Data, nil
}

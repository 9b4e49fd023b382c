package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// OutcomeKind is the classification of an auth probe response.
type OutcomeKind int

const (
	Authenticated OutcomeKind = iota
	Unauthenticated
	KycIncomplete
	KycPending
	PackageRequired
	ProfileIncomplete
)

// AuthOutcome is what the probe derived from the response status plus any
// fields it could pull from the error body.
type AuthOutcome struct {
	Kind      OutcomeKind
	Name      string
	Email     string
	KycStatus string
	Message   string
}

// The platform signals gating state through preconditional status codes.
const (
	statusKycIncomplete     = 425
	statusPackageRequired   = 426
	statusProfileIncomplete = 428
	statusKycPending        = 429
)

// probeBody is the error-body shape for the gating statuses. Parse failures
// degrade to an empty body rather than an error.
type probeBody struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	KycStatus string `json:"kycStatus"`
	Message   string `json:"message"`
}

// Classify maps an HTTP status and raw error body to an outcome. It is pure
// so the status table is testable without a server.
func Classify(status int, body []byte) AuthOutcome {
	if status >= 200 && status <= 299 {
		return AuthOutcome{Kind: Authenticated}
	}

	var b probeBody
	_ = json.Unmarshal(body, &b)

	switch status {
	case statusKycIncomplete:
		return AuthOutcome{Kind: KycIncomplete, Name: b.Name, Email: b.Email}
	case statusKycPending:
		return AuthOutcome{Kind: KycPending, Name: b.Name, Email: b.Email, KycStatus: b.KycStatus, Message: b.Message}
	case statusPackageRequired:
		return AuthOutcome{Kind: PackageRequired, Name: b.Name, Email: b.Email, Message: b.Message}
	case statusProfileIncomplete:
		return AuthOutcome{Kind: ProfileIncomplete, Name: b.Name, Email: b.Email}
	default:
		return AuthOutcome{Kind: Unauthenticated}
	}
}

// CheckAuth probes the platform's check-auth endpoint for the given role.
// Transport failures classify as Unauthenticated: the caller's only recourse
// is the sign-in redirect either way.
func (c *Client) CheckAuth(ctx context.Context, role, token string) AuthOutcome {
	if err := c.limiter.Wait(ctx); err != nil {
		return AuthOutcome{Kind: Unauthenticated}
	}

	payload, _ := json.Marshal(map[string]string{"role": role})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/", bytes.NewReader(payload))
	if err != nil {
		return AuthOutcome{Kind: Unauthenticated}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return AuthOutcome{Kind: Unauthenticated}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return Classify(resp.StatusCode, body)
}

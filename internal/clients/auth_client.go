package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AuthClient defines the interface for communicating with the auth service
type AuthClient interface {
	// ResolveRole resolves the role associated with an identity token
	ResolveRole(ctx context.Context, token string) (string, error)
}

// RoleResponse is the auth service's role resolution payload
type RoleResponse struct {
	Role string `json:"role"`
}

type authClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAuthClient creates a new auth service client
func NewAuthClient(baseURL string) AuthClient {
	return &authClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *authClient) ResolveRole(ctx context.Context, token string) (string, error) {
	url := fmt.Sprintf("%s/api/v1/auth/role", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("auth service returned status %d: %s", resp.StatusCode, string(body))
	}

	var roleResp RoleResponse
	if err := json.NewDecoder(resp.Body).Decode(&roleResp); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}

	return roleResp.Role, nil
}

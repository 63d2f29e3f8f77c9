package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

// HealthProbe checks a running server's health endpoint.
// The base URL is injected so tests can point at an httptest server.
type HealthProbe struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *HealthProbe {
	return &HealthProbe{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Check performs GET {baseURL}/api/health and expects 200 with
// status "ok". Every failure wraps domain.ErrHealthCheckFailed.
func (p *HealthProbe) Check(ctx context.Context) (*domain.AppInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrHealthCheckFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", domain.ErrHealthCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrHealthCheckFailed, resp.StatusCode)
	}

	var info domain.AppInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrHealthCheckFailed, err)
	}
	if info.Status != domain.StatusOK {
		return nil, fmt.Errorf("%w: status %q", domain.ErrHealthCheckFailed, info.Status)
	}
	return &info, nil
}

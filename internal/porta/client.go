package porta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/portacharging/charger-audit/internal/netutil"
	"github.com/portacharging/charger-audit/internal/usage"
)

// Transport-level failure classes. Wrapped into returned errors so
// callers can branch with errors.Is without parsing messages.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrPermission     = errors.New("permission denied")
)

// Client handles communication with the Porta Charging API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a Porta API client. authToken may be empty for
// endpoints that allow anonymous access.
func NewClient(baseURL, authToken string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: netutil.NewHTTPClient(timeout, logger),
		logger:     logger,
	}
}

// chargerListResponse is the body of GET /v1/chargers/{region}/{network}.
type chargerListResponse struct {
	ChargerIDs []string `json:"chargerIds"`
}

// ListChargers fetches the ordered charger IDs for a region and network.
// A failure here is terminal for the run; the caller decides that.
func (c *Client) ListChargers(ctx context.Context, region, network string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/v1/chargers/%s/%s", c.baseURL, url.PathEscape(region), url.PathEscape(network))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch charger IDs: %w", err)
	}

	var resp chargerListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode charger ID list: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"region":   region,
		"network":  network,
		"chargers": len(resp.ChargerIDs),
	}).Debug("Fetched charger ID list")

	return resp.ChargerIDs, nil
}

// FetchUsages fetches one charger's metadata and usage snapshots.
func (c *Client) FetchUsages(ctx context.Context, chargerID string) (*usage.Document, error) {
	endpoint := fmt.Sprintf("%s/v1/chargers/%s/usages", c.baseURL, url.PathEscape(chargerID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usages for %s: %w", chargerID, err)
	}

	var doc usage.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode usage document for %s: %w", chargerID, err)
	}

	c.logger.WithFields(logrus.Fields{
		"charger_id": chargerID,
		"usage_docs": len(doc.UsageData),
	}).Debug("Fetched usage document")

	return &doc, nil
}

// get performs one authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to body read
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: API returned status %d", ErrAuthentication, resp.StatusCode)
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: API returned status %d", ErrPermission, resp.StatusCode)
	default:
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"response_size": len(body),
	}).Debug("Received API response")

	return body, nil
}

// SetTimeout configures the HTTP client timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

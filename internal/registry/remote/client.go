package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hearth.homes/internal/auth"
	"hearth.homes/internal/registry"
	"hearth.homes/internal/trends"
)

// Client is a thin HTTP wrapper over the registry API, used by smoke tooling
// and sibling services. Identity attached to the context is forwarded either
// as a bearer token or as gateway headers.
type Client struct {
	baseURL string
	hc      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// New creates a client for the registry at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response decoded into the service error envelope.
type APIError struct {
	Status    int
	Code      string `json:"code"`
	Message   string `json:"error"`
	RequestID string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry api: %d %s: %s", e.Status, e.Code, e.Message)
}

// ShareRequest is the payload for creating or re-issuing a grant.
type ShareRequest struct {
	BuyerID   string         `json:"buyerId"`
	Scope     map[string]any `json:"scope,omitempty"`
	ExpiresAt *string        `json:"expiresAt,omitempty"`
}

// SharePatch is the payload for a partial grant update.
type SharePatch struct {
	Scope     map[string]any `json:"scope,omitempty"`
	ExpiresAt *string        `json:"expiresAt,omitempty"`
}

// UpsertShare creates or replaces the grant for (homeID, buyerID).
func (c *Client) UpsertShare(ctx context.Context, homeID string, req ShareRequest) (*registry.ShareGrant, error) {
	var grant registry.ShareGrant
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/homes/%s/shares", url.PathEscape(homeID)), req, &grant)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// UpdateShare applies a partial update to an existing grant.
func (c *Client) UpdateShare(ctx context.Context, homeID, shareID string, patch SharePatch) (*registry.ShareGrant, error) {
	var grant registry.ShareGrant
	path := fmt.Sprintf("/homes/%s/shares/%s", url.PathEscape(homeID), url.PathEscape(shareID))
	if err := c.do(ctx, http.MethodPatch, path, patch, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// RevokeShare deletes a grant.
func (c *Client) RevokeShare(ctx context.Context, homeID, shareID string) error {
	path := fmt.Sprintf("/homes/%s/shares/%s", url.PathEscape(homeID), url.PathEscape(shareID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SharedHome fetches the scoped projection of a home.
func (c *Client) SharedHome(ctx context.Context, homeID string) (*registry.HomeView, error) {
	var view registry.HomeView
	if err := c.do(ctx, http.MethodGet, "/shared/homes/"+url.PathEscape(homeID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// MarketTrends resolves benchmark data for a geography.
func (c *Client) MarketTrends(ctx context.Context, geoCode, propertyType string) (*trends.Report, error) {
	q := url.Values{}
	q.Set("geoCode", geoCode)
	if propertyType != "" {
		q.Set("propertyType", propertyType)
	}
	var report trends.Report
	if err := c.do(ctx, http.MethodGet, "/market-trends?"+q.Encode(), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// WishlistSnapshot fetches the aggregate wishlist view.
func (c *Client) WishlistSnapshot(ctx context.Context, wishlistID string) (*registry.SnapshotView, error) {
	var snap registry.SnapshotView
	path := fmt.Sprintf("/wishlists/%s/supply-snapshot", url.PathEscape(wishlistID))
	if err := c.do(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// MatchedHomes fetches the itemized wishlist view.
func (c *Client) MatchedHomes(ctx context.Context, wishlistID string) (*registry.MatchedHomesView, error) {
	var view registry.MatchedHomesView
	path := fmt.Sprintf("/wishlists/%s/matched-homes", url.PathEscape(wishlistID))
	if err := c.do(ctx, http.MethodGet, path, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	applyIdentity(ctx, req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func applyIdentity(ctx context.Context, req *http.Request) {
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
		return
	}
	id, ok := auth.IdentityFromContext(ctx)
	if !ok || !id.IsAuthenticated() {
		return
	}
	req.Header.Set("X-User-Id", id.UserID)
	if id.Role != "" {
		req.Header.Set("X-User-Role", id.Role)
	}
	if len(id.Scopes) > 0 {
		req.Header.Set("X-User-Scopes", strings.Join(id.Scopes, " "))
	}
}

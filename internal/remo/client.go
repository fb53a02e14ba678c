package remo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"remo-dashboard/config"
	"remo-dashboard/internal/model"
)

// Endpoint labels reported to the Observer.
const (
	EndpointAppliances = "appliances"
	EndpointDevices    = "devices"
	EndpointAirCon     = "aircon_settings"
	EndpointLight      = "light"
	EndpointSignal     = "signal_send"
)

// Observer receives the outcome of every vendor request.
type Observer interface {
	ObserveRequest(endpoint string, statusCode int, elapsed time.Duration)
	ObserveRateLimit(limit, remaining int, reset time.Time)
}

// Client talks to the Nature Remo cloud API.
type Client struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	observer Observer
}

// NewClient creates a client from the vendor configuration. A client without
// an API key is valid; every operation then fails with ErrMissingAPIKey.
func NewClient(cfg config.RemoConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// SetObserver installs the request observer.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// KeyLength returns the length of the configured API key.
func (c *Client) KeyLength() int {
	return len(c.apiKey)
}

// ListAppliancesRaw returns the vendor's appliance list unmodified.
func (c *Client) ListAppliancesRaw(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/1/appliances", EndpointAppliances, nil)
}

// ListAppliances fetches and decodes every appliance of the account.
func (c *Client) ListAppliances(ctx context.Context) ([]model.Appliance, error) {
	body, err := c.ListAppliancesRaw(ctx)
	if err != nil {
		return nil, err
	}
	var appliances []model.Appliance
	if err := json.Unmarshal(body, &appliances); err != nil {
		return nil, fmt.Errorf("failed to decode appliances: %w", err)
	}
	return appliances, nil
}

// ListDevicesRaw returns the vendor's device list unmodified.
func (c *Client) ListDevicesRaw(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/1/devices", EndpointDevices, nil)
}

// ListDevices fetches and decodes every Remo hub of the account.
func (c *Client) ListDevices(ctx context.Context) ([]model.Device, error) {
	body, err := c.ListDevicesRaw(ctx)
	if err != nil {
		return nil, err
	}
	var devices []model.Device
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}
	return devices, nil
}

// SetAirCon sends a partial settings update to an AC. The returned settings
// are nil when the vendor's answer cannot be decoded.
func (c *Client) SetAirCon(ctx context.Context, applianceID string, settings map[string]string) (*model.AirConSettings, error) {
	path := fmt.Sprintf("/1/appliances/%s/aircon_settings", url.PathEscape(applianceID))
	body, err := c.do(ctx, http.MethodPost, path, EndpointAirCon, AirConForm(settings))
	if err != nil {
		return nil, err
	}
	var updated model.AirConSettings
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, nil
	}
	return &updated, nil
}

// SetLight presses a button of a light remote.
func (c *Client) SetLight(ctx context.Context, applianceID, button string) (*model.LightState, error) {
	path := fmt.Sprintf("/1/appliances/%s/light", url.PathEscape(applianceID))
	body, err := c.do(ctx, http.MethodPost, path, EndpointLight, LightForm(button))
	if err != nil {
		return nil, err
	}
	var state model.LightState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, nil
	}
	return &state, nil
}

// FireSignal replays a stored infrared signal.
func (c *Client) FireSignal(ctx context.Context, signalID string) error {
	path := fmt.Sprintf("/1/signals/%s/send", url.PathEscape(signalID))
	_, err := c.do(ctx, http.MethodPost, path, EndpointSignal, url.Values{})
	return err
}

func (c *Client) do(ctx context.Context, method, path, endpoint string, form url.Values) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	log.Printf("Making request to: %s %s", method, path)
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	c.observe(endpoint, resp.StatusCode, time.Since(start))
	c.observeRateLimit(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("API request failed: %s %s", resp.Status, bytes.TrimSpace(body))
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return body, nil
}

func (c *Client) observe(endpoint string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, status, elapsed)
	}
}

func (c *Client) observeRateLimit(h http.Header) {
	if c.observer == nil {
		return
	}
	limit, err1 := strconv.Atoi(h.Get("X-Rate-Limit-Limit"))
	remaining, err2 := strconv.Atoi(h.Get("X-Rate-Limit-Remaining"))
	reset, err3 := strconv.ParseInt(h.Get("X-Rate-Limit-Reset"), 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	c.observer.ObserveRateLimit(limit, remaining, time.Unix(reset, 0))
}

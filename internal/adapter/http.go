package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig carries the settings of the HTTP [ServerAdapter].
type HTTPClientConfig struct {
	// BaseURL is the address of the vault server, with or without scheme
	// (e.g. "localhost:8080" or "https://vault.example.net").
	BaseURL string

	// Timeout bounds every request. Non-positive values fall back to 15s.
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu       sync.RWMutex
	username string
	password string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates cfg.BaseURL and configures the
// underlying resty client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetCredentials implements [ServerAdapter]. The username is stored
// whitespace-trimmed; the password as given.
func (h *httpServerAdapter) SetCredentials(username, password string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.username = strings.TrimSpace(username)
	h.password = password
}

// Username implements [ServerAdapter].
func (h *httpServerAdapter) Username() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.username
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/register and stores them via SetCredentials on success, so
// the adapter is immediately usable for authenticated calls.
func (h *httpServerAdapter) Register(ctx context.Context, username, password string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/api/user/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetCredentials(username, password)
	return nil
}

// Login implements [ServerAdapter]. It POSTs to POST /api/user/login with the
// stored credentials; the server re-verifies them and echoes the account.
func (h *httpServerAdapter) Login(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/user/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteAccount implements [ServerAdapter]. It sends DELETE /api/user; the
// server cascades the deletion over the account's secret records.
func (h *httpServerAdapter) DeleteAccount(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Delete("/api/user")
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}

	return mapHTTPError(resp)
}

// SavePassword implements [ServerAdapter]. It POSTs the new entry to
// POST /api/passwords/ and decodes the stored record from the response, so
// the caller sees the generated secret when none was supplied.
func (h *httpServerAdapter) SavePassword(ctx context.Context, serviceName, use, platform, secretValue string) (models.SecretRecord, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"service_name": serviceName,
			"use":          use,
			"platform":     platform,
			"secret_value": secretValue,
		}).
		Post("/api/passwords/")
	if err != nil {
		return models.SecretRecord{}, fmt.Errorf("save password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SecretRecord{}, err
	}

	var record models.SecretRecord
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.SecretRecord{}, fmt.Errorf("decode save password response: %w", err)
	}

	return record, nil
}

// UpdatePassword implements [ServerAdapter]. It PUTs the new secret to
// PUT /api/passwords/{service}.
func (h *httpServerAdapter) UpdatePassword(ctx context.Context, serviceName, newSecretValue string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"secret_value": newSecretValue}).
		Put("/api/passwords/" + url.PathEscape(serviceName))
	if err != nil {
		return fmt.Errorf("update password request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeletePassword implements [ServerAdapter]. It sends
// DELETE /api/passwords/{service}.
func (h *httpServerAdapter) DeletePassword(ctx context.Context, serviceName string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/passwords/" + url.PathEscape(serviceName))
	if err != nil {
		return fmt.Errorf("delete password request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListPasswords implements [ServerAdapter]. It GETs /api/passwords/ and
// decodes the owned records.
func (h *httpServerAdapter) ListPasswords(ctx context.Context) ([]models.SecretRecord, error) {
	resp, err := h.authedRequest(ctx).Get("/api/passwords/")
	if err != nil {
		return nil, fmt.Errorf("list passwords request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.SecretRecord
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode list passwords response: %w", err)
	}

	return records, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	h.mu.RLock()
	username, password := h.username, h.password
	h.mu.RUnlock()

	return h.client.R().
		SetContext(ctx).
		SetBasicAuth(username, password)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.StructuredConfig{App: config.App{GeneratedPasswordLength: 10}}
	services := service.NewServices(store.NewMemoryStore(logger.Nop()), cfg, logger.Nop())
	handler := NewHandler(services, logger.Nop())

	srv := httptest.NewServer(handler.Init())
	t.Cleanup(srv.Close)

	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path string, body any, username, password string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if username != "" {
		req.SetBasicAuth(username, password)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, responseBody
}

func registerUser(t *testing.T, srv *httptest.Server, username, password string) {
	t.Helper()

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/user/register",
		credentialsRequest{Username: username, Password: password}, "", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// ─────────────────────────────────────────────
// /api/user
// ─────────────────────────────────────────────

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/api/user/register",
		credentialsRequest{Username: "john", Password: "s3cret"}, "", "")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var response usernameResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "john", response.Username)
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/user/register",
		credentialsRequest{Username: "john", Password: "other"}, "", "")

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterEndpoint_BlankUsername(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/user/register",
		credentialsRequest{Username: "  ", Password: "s3cret"}, "", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterEndpoint_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/user/register",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, body := doRequest(t, srv, http.MethodPost, "/api/user/login", nil, "john", "s3cret")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response usernameResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "john", response.Username)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/user/login", nil, "john", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginEndpoint_NoCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/user/login", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
}

func TestDeleteUserEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	// seed some records for the cascade
	resp, _ := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github", SecretValue: "xyz"}, "john", "s3cret")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/user", nil, "john", "s3cret")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// credentials are now invalid
	resp, _ = doRequest(t, srv, http.MethodPost, "/api/user/login", nil, "john", "s3cret")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ─────────────────────────────────────────────
// /api/passwords
// ─────────────────────────────────────────────

func TestSavePasswordEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, body := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github", Use: "work", Platform: "laptop", SecretValue: "Xk9@pQ"},
		"john", "s3cret")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var record models.SecretRecord
	require.NoError(t, json.Unmarshal(body, &record))
	assert.NotEmpty(t, record.RecordID)
	assert.Equal(t, "john", record.Username)
	assert.Equal(t, "github", record.ServiceName)
	assert.Equal(t, "Xk9@pQ", record.SecretValue)
}

func TestSavePasswordEndpoint_GeneratedSecret(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, body := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github"}, "john", "s3cret")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var record models.SecretRecord
	require.NoError(t, json.Unmarshal(body, &record))
	assert.Len(t, record.SecretValue, 10)
}

func TestListPasswordsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")
	registerUser(t, srv, "jane", "0ther")

	for _, serviceName := range []string{"github", "gitlab"} {
		resp, _ := doRequest(t, srv, http.MethodPost, "/api/passwords/",
			savePasswordRequest{ServiceName: serviceName, SecretValue: "xyz"}, "john", "s3cret")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github", SecretValue: "janes"}, "jane", "0ther")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, srv, http.MethodGet, "/api/passwords/", nil, "john", "s3cret")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var records []models.SecretRecord
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "john", record.Username)
	}
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github", SecretValue: "old"}, "john", "s3cret")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPut, "/api/passwords/github",
		updatePasswordRequest{SecretValue: "new"}, "john", "s3cret")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doRequest(t, srv, http.MethodGet, "/api/passwords/", nil, "john", "s3cret")
	var records []models.SecretRecord
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "new", records[0].SecretValue)
}

func TestUpdatePasswordEndpoint_NotFound(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, _ := doRequest(t, srv, http.MethodPut, "/api/passwords/no-such-service",
		updatePasswordRequest{SecretValue: "new"}, "john", "s3cret")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePasswordEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github", SecretValue: "xyz"}, "john", "s3cret")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/passwords/github", nil, "john", "s3cret")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/passwords/github", nil, "john", "s3cret")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPasswordsEndpoint_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/passwords/", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordsEndpoint_ScopedToAuthenticatedUser(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "john", "s3cret")
	registerUser(t, srv, "jane", "0ther")

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/passwords/",
		savePasswordRequest{ServiceName: "github", SecretValue: "johns"}, "john", "s3cret")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// jane cannot update or delete john's record
	resp, _ = doRequest(t, srv, http.MethodPut, "/api/passwords/github",
		updatePasswordRequest{SecretValue: "hijacked"}, "jane", "0ther")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/passwords/github", nil, "jane", "0ther")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

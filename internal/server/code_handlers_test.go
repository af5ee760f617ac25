package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeRoundtrip(t *testing.T) {
	s, app, _ := newTestServer()
	mailer := &recordingMailer{}
	s.codeService = newCodeServiceForTest(mailer)

	// Issue a code for the address.
	req := httptest.NewRequest(http.MethodGet, "/api/code/get", nil)
	req.Header.Set("email", "owl@example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, mailer.lastCode)
	assert.Equal(t, "owl@example.com", mailer.lastEmail)

	// The mailed code checks out once.
	check := httptest.NewRequest(http.MethodGet, "/api/code/check", nil)
	check.Header.Set("email", "owl@example.com")
	check.Header.Set("code", mailer.lastCode)
	resp2, err := app.Test(check)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	// A match consumes the code, so the replay fails.
	resp3, err := app.Test(check)
	require.NoError(t, err)
	defer func() { _ = resp3.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp3.StatusCode)
}

func TestCheckCode_Mismatch(t *testing.T) {
	s, app, _ := newTestServer()
	mailer := &recordingMailer{}
	s.codeService = newCodeServiceForTest(mailer)

	req := httptest.NewRequest(http.MethodGet, "/api/code/get", nil)
	req.Header.Set("email", "owl@example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	check := httptest.NewRequest(http.MethodGet, "/api/code/check", nil)
	check.Header.Set("email", "owl@example.com")
	check.Header.Set("code", "000000a") // never a valid 6-digit code
	resp2, err := app.Test(check)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestGetCode_MissingEmail(t *testing.T) {
	_, app, _ := newTestServer()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/code/get", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckCode_MissingHeaders(t *testing.T) {
	_, app, _ := newTestServer()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/code/check", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

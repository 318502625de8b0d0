package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/susu3304/lootsplit/internal/config"
	"github.com/susu3304/lootsplit/internal/hunt"
	"golang.org/x/text/language"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	cfg := &config.Config{
		WebBind:       "127.0.0.1:0",
		CORSOrigins:   []string{"*"},
		MaxInputBytes: 4096,
		ShareLocale:   language.English.String(),
		ShareFooter:   "Powered by lootsplit",
	}
	return New(cfg, hunt.Options{}, nil)
}

func sampleReport(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("../hunt/testdata/sample.txt")
	require.NoError(t, err)
	return string(b)
}

func do(t *testing.T, a *API, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleWebInterface(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	api.handleWebInterface(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "text/html; charset=utf-8" {
		t.Errorf("Expected Content-Type text/html; charset=utf-8, got %v", contentType)
	}

	body := w.Body.String()
	for _, expected := range []string{"<!DOCTYPE html>", "lootsplit", "splitLoot", "/api/parse"} {
		if !strings.Contains(body, expected) {
			t.Errorf("Expected response to contain '%s'", expected)
		}
	}
}

func TestHealth(t *testing.T) {
	w := do(t, newTestAPI(t), "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHandleValidate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValid bool
		wantMsg   string
	}{
		{name: "valid", text: sampleReport(t), wantValid: true, wantMsg: ""},
		{name: "empty", text: "", wantValid: false, wantMsg: ""},
		{name: "whitespace", text: "  \n", wantValid: false, wantMsg: ""},
		{name: "invalid", text: "Session data: nope", wantValid: false, wantMsg: hunt.MsgInvalidFormat},
	}

	api := newTestAPI(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, api, "POST", "/api/validate", map[string]string{"text": tt.text})
			require.Equal(t, http.StatusOK, w.Code)

			var got validateResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestHandleParse(t *testing.T) {
	w := do(t, newTestAPI(t), "POST", "/api/parse", map[string]string{"text": sampleReport(t)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got hunt.Summary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 5, got.NumPlayers)
	assert.Equal(t, int64(932109), got.IndividualBalance)
	assert.Len(t, got.TransferInstructions, 4)
	assert.Equal(t, "Warkant", got.Players[4].Name)
	assert.True(t, got.Players[4].IsLeader)
}

func TestHandleParseErrors(t *testing.T) {
	header := strings.Join(strings.Split(sampleReport(t), "\n")[:6], "\n")

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{name: "missing text", body: map[string]string{}, wantStatus: http.StatusBadRequest, wantError: "text is required"},
		{name: "whitespace text", body: map[string]string{"text": " \n "}, wantStatus: http.StatusBadRequest, wantError: "text is required"},
		{name: "malformed", body: map[string]string{"text": "hello"}, wantStatus: http.StatusUnprocessableEntity, wantError: hunt.MsgInvalidFormat},
		{name: "no participants", body: map[string]string{"text": header}, wantStatus: http.StatusUnprocessableEntity, wantError: hunt.MsgParseFailed},
		{name: "not json", body: "just a string", wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "too large", body: map[string]string{"text": strings.Repeat("x", 5000)}, wantStatus: http.StatusRequestEntityTooLarge, wantError: "report is too large"},
	}

	api := newTestAPI(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, api, "POST", "/api/parse", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var got errorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.wantError, got.Error)
		})
	}
}

func TestHandleShare(t *testing.T) {
	w := do(t, newTestAPI(t), "POST", "/api/share", map[string]any{"text": sampleReport(t), "groupDigits": true})
	require.Equal(t, http.StatusOK, w.Code)

	var got shareResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Contains(t, got.Text, "Balance: **4,660,544 gp**")
	assert.Contains(t, got.Text, "*Powered by lootsplit*")
	assert.Equal(t, "transfer 103721 to Chodzacy zduchami tanno", got.Commands[0])
}

func TestRequestID(t *testing.T) {
	api := newTestAPI(t)

	w := do(t, api, "GET", "/healthz", nil)
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/api/parse", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	newTestAPI(t).Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	w := do(t, newTestAPI(t), "GET", "/api/parse", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

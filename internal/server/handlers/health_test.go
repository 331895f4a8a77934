package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		version        string
		pinger         Pinger
		expectedStatus int
		expectedBody   HealthResponse
	}{
		{
			name:           "ok without pinger",
			method:         http.MethodGet,
			version:        "1.2.3",
			expectedStatus: http.StatusOK,
			expectedBody:   HealthResponse{Status: "ok", Version: "1.2.3"},
		},
		{
			name:           "default version",
			method:         http.MethodGet,
			pinger:         pingerFunc(func(ctx context.Context) error { return nil }),
			expectedStatus: http.StatusOK,
			expectedBody:   HealthResponse{Status: "ok", Version: "dev"},
		},
		{
			name:           "storage unavailable",
			method:         http.MethodGet,
			version:        "1.2.3",
			pinger:         pingerFunc(func(ctx context.Context) error { return errors.New("db is gone") }),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   HealthResponse{Status: "unavailable", Version: "1.2.3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(setupTestLogger(), tt.version, tt.pinger)

			req := httptest.NewRequest(tt.method, "/api/v1/health", nil)
			w := httptest.NewRecorder()

			handler.Health(w, req)

			resp := w.Result()
			defer func() {
				err := resp.Body.Close()
				assert.NoError(t, err)
			}()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var healthResp HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&healthResp))
			assert.Equal(t, tt.expectedBody, healthResp)
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(setupTestLogger(), "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

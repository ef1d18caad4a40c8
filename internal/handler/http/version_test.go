package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/internal/service"
	"github.com/dkotelnikov/user-service/models"
)

func TestGetServerVersion_WritesVersion(t *testing.T) {
	h := NewHandler(
		&service.Services{AppInfoService: &mockAppInfoSvc{}},
		logger.Nop(),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	rec := httptest.NewRecorder()

	h.getServerVersion(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-version", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestGetHealth(t *testing.T) {
	h := NewHandler(
		&service.Services{AppInfoService: &mockAppInfoSvc{}},
		logger.Nop(),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.getHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

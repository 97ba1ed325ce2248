package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	// Empty catalog leaves the search index degraded, never unhealthy.
	assert.Contains(t, []string{"healthy", "degraded"}, envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
}

func TestHealthCheck_IndexedCatalogIsHealthy(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "reader")
	ts.createBook(t, token, "Dune")

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["search"].Status)
}

package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/cerebro-sinaptico/synapse-backend/internal/api/http"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := httpapi.NewHealthHandler("synapse-backend", "1.0.0", nil, nil)
	h.RegisterRoutes(r)

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)

		var body httpapi.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "synapse-backend", body.Service)
		assert.Equal(t, "1.0.0", body.Version)
		// no db or cache wired in this test
		assert.Equal(t, "disabled", body.DB)
		assert.Equal(t, "disabled", body.Cache)
		assert.False(t, body.Timestamp.IsZero())
	}
}

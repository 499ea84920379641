package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFmtFixer(t *testing.T) {
	assert.Equal(t, "study_manager", FmtFixer("study-manager"))
	assert.Equal(t, "api_response_time", FmtFixer("api.response_time"))
}

func TestExportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewManager("study-manager", "core")
	m.NewCounterVec("api_error", []string{"method", "api", "status"}).WithLabelValues("GET", "/x", "404").Inc()

	engine := gin.New()
	engine.GET("/metrics", m.ExportHandler())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `study_manager_core_api_error{api="/x",method="GET",status="404"} 1`)
}

func TestManagersAreIndependent(t *testing.T) {
	// two managers may declare the same vector without a duplicate registration panic
	NewManager("a", "core").NewHistogramVec("api_response_time", []string{"api"})
	NewManager("a", "core").NewHistogramVec("api_response_time", []string{"api"})
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminReviewEngine() *gin.Engine {
	engine := gin.New()
	NewReviewHandler(nil).RegisterAdminRoutes(engine.Group("/admin"))
	return engine
}

func TestReviewModerationRoute_PatchWithAction(t *testing.T) {
	engine := adminReviewEngine()

	var patched bool
	for _, r := range engine.Routes() {
		if r.Method == http.MethodPatch && r.Path == "/admin/reviews/:id" {
			patched = true
		}
		assert.NotContains(t, r.Path, "/approve")
		assert.NotContains(t, r.Path, "/reject")
	}
	assert.True(t, patched)
}

func TestReviewModerationRoute_RejectsUnknownAction(t *testing.T) {
	engine := adminReviewEngine()

	body := strings.NewReader(`{"action":"publish"}`)
	req := httptest.NewRequest(http.MethodPatch, "/admin/reviews/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

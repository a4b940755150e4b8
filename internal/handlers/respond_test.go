package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mentora/backend/internal/services"
	"mentora/backend/internal/store/inmem"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEnvelopes(t *testing.T) {
	assert.Equal(t, gin.H{"status": "success", "message": "ok"}, statusEnvelope.ok("ok"))
	assert.Equal(t, gin.H{"status": "error", "message": "no"}, statusEnvelope.fail("no"))
	assert.Equal(t, gin.H{"success": true, "message": "ok"}, successEnvelope.ok("ok"))
	assert.Equal(t, gin.H{"success": false, "message": "no"}, successEnvelope.fail("no"))
}

func TestBindReportsFieldsByJSONName(t *testing.T) {
	New(Options{Store: inmem.New()})

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var payload AddAssignmentPayload
		if bind(c, successEnvelope, &payload) {
			c.Status(http.StatusOK)
		}
	})

	tests := []struct {
		name      string
		body      string
		hasFields bool
	}{
		{"missing fields", `{"marks":-1}`, true},
		{"malformed json", `{"title":`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"message":"Invalid request payload"`)
			if tt.hasFields {
				assert.Contains(t, w.Body.String(), `"courseId"`)
				assert.Contains(t, w.Body.String(), `"title"`)
				assert.Contains(t, w.Body.String(), `"marks"`)
			} else {
				assert.NotContains(t, w.Body.String(), `"fields"`)
			}
		})
	}
}

type failingSigner struct{}

func (failingSigner) Sign() (services.UploadAuth, error) {
	return services.UploadAuth{}, assert.AnError
}

func TestImageKitSignatureFailure(t *testing.T) {
	h := New(Options{Store: inmem.New(), Signer: failingSigner{}})
	r := gin.New()
	r.GET("/sig", h.GetImageKitSignature)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sig", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, w.Body.String())
}

package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resto-admin/internal/domain"
	"resto-admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	last domain.EnforceRequest
}

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	m.last = req
	return req.Resource == "table" && req.Action == "read", nil
}

func withSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Attach(c, sess)
		c.Next()
	}
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockService{}
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/rbac/enforce", withSession(&session.Session{UserID: 9}), handler.Enforce)

	jsonBody, _ := json.Marshal(map[string]string{"resource": "table", "action": "read"})
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Ok   bool                   `json:"ok"`
		Data domain.EnforceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
	assert.Equal(t, "9", service.last.UserID)
}

func TestHandler_Enforce_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", withSession(&session.Session{UserID: 9}), NewHandler(&mockService{}).Enforce)

	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"table"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Enforce_NoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(&mockService{}).Enforce)

	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"table","action":"read"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

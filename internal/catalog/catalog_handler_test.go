package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto-admin/internal/audit"
	"resto-admin/internal/domain"
	"resto-admin/internal/platform"
	"resto-admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type allowResource string

func (a allowResource) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.Resource == string(a), nil
}

func newRouter(api *stubAPI, allowed string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		session.Attach(c, &session.Session{UserID: 1})
		c.Next()
	})
	h := NewHandler(NewService(api, nil, time.Minute, audit.Nop()), zap.NewNop())
	RegisterRoutes(r.Group("/api/v1"), h, allowResource(allowed))
	return r
}

func TestHandler_ListPassesMetaThrough(t *testing.T) {
	api := &stubAPI{payload: platform.Payload{
		Status: 200,
		Data:   json.RawMessage(`[{"id":1,"name":"Nasi goreng"}]`),
		Meta:   json.RawMessage(`{"total":1}`),
	}}
	r := newRouter(api, "food-item")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/food-items?q=nasi", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":[{"id":1,"name":"Nasi goreng"}],"meta":{"total":1}}`, w.Body.String())
}

func TestHandler_EachResourceHasItsOwnGuard(t *testing.T) {
	r := newRouter(&stubAPI{}, "food-item")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "payment:read")
}

func TestHandler_CategoryTypeByCode(t *testing.T) {
	api := &stubAPI{payload: platform.Payload{Status: 200, Data: json.RawMessage(`{"code":"FOOD"}`)}}
	r := newRouter(api, "category-type")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/category-types/code/FOOD", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/category-types/code/FOOD", api.calls[0].path)
}

func TestHandler_CreateRejectsArrayBody(t *testing.T) {
	r := newRouter(&stubAPI{}, "table")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tables", strings.NewReader(`[1,2]`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_OversizedBodyIsRejected(t *testing.T) {
	api := &stubAPI{}
	r := newRouter(api, "table")

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/tables"},
		{http.MethodPut, "/api/v1/tables/3"},
	} {
		t.Run(tc.method, func(t *testing.T) {
			body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
			assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")
		})
	}
	assert.Empty(t, api.calls)
}

func TestHandler_InvalidID(t *testing.T) {
	r := newRouter(&stubAPI{}, "exam")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/exams/zero", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package permission_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resto-admin/internal/permission"
	permissionerrors "resto-admin/internal/permission/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakePermissionService struct {
	permission.Service
	PreviewFn func(ctx context.Context, req permission.TemplateRequest) (permission.PreviewResponse, error)
	BulkFn    func(ctx context.Context, req permission.TemplateRequest) ([]permission.Permission, error)
	GetByIDFn func(ctx context.Context, id int64) (permission.Permission, error)
}

func (f *fakePermissionService) Preview(ctx context.Context, req permission.TemplateRequest) (permission.PreviewResponse, error) {
	return f.PreviewFn(ctx, req)
}

func (f *fakePermissionService) BulkCreateFromTemplate(ctx context.Context, req permission.TemplateRequest) ([]permission.Permission, error) {
	return f.BulkFn(ctx, req)
}

func (f *fakePermissionService) GetByID(ctx context.Context, id int64) (permission.Permission, error) {
	return f.GetByIDFn(ctx, id)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPermissionHandler_Preview(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakePermissionService{
			PreviewFn: func(ctx context.Context, req permission.TemplateRequest) (permission.PreviewResponse, error) {
				assert.Equal(t, "table", req.Resource)
				return permission.PreviewResponse{Resource: "table", SelectedActions: []string{"READ"}}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/permissions/templates/preview",
			`{"resource":"table","selectedActions":["READ"]}`)

		permission.NewHandler(svc, zap.NewNop()).Preview(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"selectedActions":["READ"]`)
	})

	t.Run("unknown action", func(t *testing.T) {
		svc := &fakePermissionService{
			PreviewFn: func(ctx context.Context, req permission.TemplateRequest) (permission.PreviewResponse, error) {
				return permission.PreviewResponse{}, permissionerrors.ErrUnknownAction
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/permissions/templates/preview",
			`{"resource":"table","selectedActions":["APPROVE"]}`)

		permission.NewHandler(svc, zap.NewNop()).Preview(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPermissionHandler_PreviewAppliesOps(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo, svc, _, _ := setup(t)
	repo.EXPECT().Templates(gomock.Any()).Return(templates(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/permissions/templates/preview", `{
		"resource": "table",
		"ops": [
			{"op": "select", "action": "CREATE"},
			{"op": "select", "action": "READ"},
			{"op": "deselect", "action": "CREATE"}
		]
	}`)

	permission.NewHandler(svc, zap.NewNop()).Preview(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"selectedActions":["READ"]`)
	assert.Contains(t, w.Body.String(), `"code":"table.read"`)
	assert.NotContains(t, w.Body.String(), "table.create")
}

func TestPermissionHandler_PreviewRejectsUnknownOp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/permissions/templates/preview",
		`{"resource":"table","ops":[{"op":"invert"}]}`)

	permission.NewHandler(&fakePermissionService{}, zap.NewNop()).Preview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPermissionHandler_BulkCreateFromTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		svc := &fakePermissionService{
			BulkFn: func(ctx context.Context, req permission.TemplateRequest) ([]permission.Permission, error) {
				return []permission.Permission{{ID: 1, Code: "table.read"}}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/permissions/bulk-from-template",
			`{"resource":"table","selectedActions":["READ"]}`)

		permission.NewHandler(svc, zap.NewNop()).BulkCreateFromTemplate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "table.read")
	})

	t.Run("empty selection rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/permissions/bulk-from-template",
			`{"resource":"table","selectedActions":[]}`)

		permission.NewHandler(&fakePermissionService{}, zap.NewNop()).BulkCreateFromTemplate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPermissionHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePermissionService{
		GetByIDFn: func(ctx context.Context, id int64) (permission.Permission, error) {
			return permission.Permission{}, permissionerrors.ErrPermissionNotFound
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/permissions/9", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}

	permission.NewHandler(svc, zap.NewNop()).GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

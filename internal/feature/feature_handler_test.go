package feature_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resto-admin/internal/feature"
	featureerrors "resto-admin/internal/feature/errors"
	"resto-admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeFeatureService struct {
	ListFn              func(ctx context.Context) ([]feature.Feature, error)
	TreeFn              func(ctx context.Context) ([]*feature.Node, error)
	SidebarFn           func(ctx context.Context, viewer feature.Viewer) ([]feature.NavItem, error)
	GetByIDFn           func(ctx context.Context, id int64) (feature.Feature, error)
	CreateFn            func(ctx context.Context, req feature.CreateFeatureRequest) (feature.Feature, error)
	UpdateFn            func(ctx context.Context, id int64, req feature.UpdateFeatureRequest) (feature.Feature, error)
	DeleteFn            func(ctx context.Context, id int64) error
	AttachPermissionsFn func(ctx context.Context, id int64, ids []int64) error
	DetachPermissionsFn func(ctx context.Context, id int64, ids []int64) error
}

func (f *fakeFeatureService) List(ctx context.Context) ([]feature.Feature, error) {
	return f.ListFn(ctx)
}
func (f *fakeFeatureService) Tree(ctx context.Context) ([]*feature.Node, error) {
	return f.TreeFn(ctx)
}
func (f *fakeFeatureService) Sidebar(ctx context.Context, viewer feature.Viewer) ([]feature.NavItem, error) {
	return f.SidebarFn(ctx, viewer)
}
func (f *fakeFeatureService) GetByID(ctx context.Context, id int64) (feature.Feature, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeFeatureService) Create(ctx context.Context, req feature.CreateFeatureRequest) (feature.Feature, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeFeatureService) Update(ctx context.Context, id int64, req feature.UpdateFeatureRequest) (feature.Feature, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeFeatureService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeFeatureService) AttachPermissions(ctx context.Context, id int64, ids []int64) error {
	return f.AttachPermissionsFn(ctx, id, ids)
}
func (f *fakeFeatureService) DetachPermissions(ctx context.Context, id int64, ids []int64) error {
	return f.DetachPermissionsFn(ctx, id, ids)
}

func setupHandler(svc feature.Service) *feature.Handler {
	return feature.NewHandler(svc, zap.NewNop())
}

func TestFeatureHandler_Tree(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeFeatureService{
			TreeFn: func(ctx context.Context) ([]*feature.Node, error) {
				return []*feature.Node{{Feature: feature.Feature{ID: 1, Label: "Catalog"}}}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/tree", nil)

		setupHandler(svc).Tree(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Catalog")
	})

	t.Run("cycle", func(t *testing.T) {
		svc := &fakeFeatureService{
			TreeFn: func(ctx context.Context) ([]*feature.Node, error) {
				return nil, featureerrors.ErrFeatureCycle
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/tree", nil)

		setupHandler(svc).Tree(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "UPSTREAM_DATA_INVALID")
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := &fakeFeatureService{
			TreeFn: func(ctx context.Context) ([]*feature.Node, error) {
				return nil, errors.New("boom")
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/tree", nil)

		setupHandler(svc).Tree(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestFeatureHandler_Sidebar(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses session grants", func(t *testing.T) {
		svc := &fakeFeatureService{
			SidebarFn: func(ctx context.Context, viewer feature.Viewer) ([]feature.NavItem, error) {
				assert.False(t, viewer.IsAdmin)
				assert.Equal(t, []int64{3, 4}, viewer.FeatureIDs)
				return []feature.NavItem{{ID: 3, Label: "Tables"}}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/sidebar", nil)
		session.Attach(c, &session.Session{UserID: 1, FeatureIDs: []int64{3, 4}})

		setupHandler(svc).Sidebar(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Tables")
	})

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/sidebar", nil)

		setupHandler(&fakeFeatureService{}).Sidebar(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFeatureHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		setupHandler(&fakeFeatureService{}).GetByID(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeFeatureService{
			GetByIDFn: func(ctx context.Context, id int64) (feature.Feature, error) {
				assert.Equal(t, int64(7), id)
				return feature.Feature{}, featureerrors.ErrFeatureNotFound
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/features/7", nil)
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		setupHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFeatureHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeFeatureService{
			CreateFn: func(ctx context.Context, req feature.CreateFeatureRequest) (feature.Feature, error) {
				assert.Equal(t, "Payments", req.Label)
				assert.Equal(t, int64(1), *req.ParentID)
				return feature.Feature{ID: 12, Label: req.Label}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/features",
			strings.NewReader(`{"label":"Payments","parentId":1}`))
		c.Request.Header.Set("Content-Type", "application/json")

		setupHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":12`)
	})

	t.Run("missing label", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/features", strings.NewReader(`{"link":"/x"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		setupHandler(&fakeFeatureService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Label is required")
	})
}

func TestFeatureHandler_AttachPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeFeatureService{
			AttachPermissionsFn: func(ctx context.Context, id int64, ids []int64) error {
				assert.Equal(t, int64(5), id)
				assert.Equal(t, []int64{1, 2}, ids)
				return nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/features/5/permissions",
			strings.NewReader(`{"permissionIds":[1,2]}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		setupHandler(svc).AttachPermissions(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/features/5/permissions",
			strings.NewReader(`{"permissionIds":[]}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "5"}}

		setupHandler(&fakeFeatureService{}).AttachPermissions(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package feature_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resto-admin/internal/audit"
	"resto-admin/internal/feature"
	featureerrors "resto-admin/internal/feature/errors"
	mock_feature "resto-admin/internal/feature/mock"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingAudit struct {
	entries []audit.Entry
}

func (r *recordingAudit) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func ptr(v int64) *int64 { return &v }

type fixture struct {
	repo  *mock_feature.MockRepository
	svc   feature.Service
	mr    *miniredis.Miniredis
	audit *recordingAudit
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := mock_feature.NewMockRepository(ctrl)
	rec := &recordingAudit{}
	svc := feature.NewService(repo, cache.New(rdb), time.Minute, rec)
	return fixture{repo: repo, svc: svc, mr: mr, audit: rec}
}

func TestService_List_Cached(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.repo.EXPECT().List(gomock.Any()).Return([]feature.Feature{{ID: 1, Label: "Dashboard"}}, nil).Times(1)

	first, err := f.svc.List(ctx)
	require.NoError(t, err)
	second, err := f.svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, f.mr.Exists(feature.AllKey))
}

func TestService_Tree(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().List(gomock.Any()).Return([]feature.Feature{
			{ID: 1, SortOrder: 2},
			{ID: 2, ParentID: ptr(1)},
			{ID: 3, SortOrder: 1},
		}, nil)

		roots, err := f.svc.Tree(context.Background())
		require.NoError(t, err)
		require.Len(t, roots, 2)
		assert.Equal(t, int64(3), roots[0].ID)
		assert.Equal(t, int64(2), roots[1].Children[0].ID)
	})

	t.Run("cycle surfaces as upstream data error", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().List(gomock.Any()).Return([]feature.Feature{
			{ID: 1, ParentID: ptr(2)},
			{ID: 2, ParentID: ptr(1)},
		}, nil)

		_, err := f.svc.Tree(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, featureerrors.ErrFeatureCycle)
		assert.Equal(t, 502, apperror.ToHTTP(err).Status)
	})

	t.Run("repository error", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().List(gomock.Any()).Return(nil, apperror.ErrServiceUnavailable)

		_, err := f.svc.Tree(context.Background())
		assert.ErrorIs(t, err, apperror.ErrServiceUnavailable)
	})
}

func TestService_Sidebar(t *testing.T) {
	f := setup(t)
	f.repo.EXPECT().List(gomock.Any()).Return([]feature.Feature{
		{ID: 1, Label: "Catalog", IsActive: true},
		{ID: 2, Label: "Tables", IsActive: true, ParentID: ptr(1)},
	}, nil)

	items, err := f.svc.Sidebar(context.Background(), feature.Viewer{FeatureIDs: []int64{2}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tables", items[0].Label)
}

func TestService_Create_InvalidatesAndAudits(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.mr.Set(feature.AllKey, `[]`))

	req := feature.CreateFeatureRequest{Label: "Payments"}
	f.repo.EXPECT().Create(gomock.Any(), req).Return(&feature.Feature{ID: 12, Label: "Payments"}, nil)

	created, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)

	assert.False(t, f.mr.Exists(feature.AllKey))
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "feature.create", f.audit.entries[0].Action)
	assert.Equal(t, "12", f.audit.entries[0].ResourceID)
}

func TestService_Create_Error(t *testing.T) {
	f := setup(t)
	req := feature.CreateFeatureRequest{Label: "Payments"}
	f.repo.EXPECT().Create(gomock.Any(), req).Return(nil, apperror.ErrInvalidInput)

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, f.audit.entries)
}

func TestService_Update_ParentChecks(t *testing.T) {
	flat := []feature.Feature{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(2)},
	}

	t.Run("self parent", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Update(context.Background(), 1, feature.UpdateFeatureRequest{Label: "x", ParentID: ptr(1)})
		assert.ErrorIs(t, err, featureerrors.ErrSelfParent)
	})

	t.Run("descendant parent", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().List(gomock.Any()).Return(flat, nil)

		_, err := f.svc.Update(context.Background(), 1, feature.UpdateFeatureRequest{Label: "x", ParentID: ptr(3)})
		assert.ErrorIs(t, err, featureerrors.ErrParentIsDescendant)
	})

	t.Run("valid move", func(t *testing.T) {
		f := setup(t)
		req := feature.UpdateFeatureRequest{Label: "x", ParentID: ptr(1)}
		f.repo.EXPECT().List(gomock.Any()).Return(flat, nil)
		f.repo.EXPECT().Update(gomock.Any(), int64(3), req).Return(&feature.Feature{ID: 3, ParentID: ptr(1)}, nil)

		updated, err := f.svc.Update(context.Background(), 3, req)
		require.NoError(t, err)
		assert.Equal(t, int64(1), *updated.ParentID)
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)
		req := feature.UpdateFeatureRequest{Label: "x"}
		f.repo.EXPECT().Update(gomock.Any(), int64(8), req).Return(nil, featureerrors.ErrFeatureNotFound)

		_, err := f.svc.Update(context.Background(), 8, req)
		assert.True(t, errors.Is(err, featureerrors.ErrFeatureNotFound))
	})
}

func TestService_Permissions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.repo.EXPECT().AttachPermissions(gomock.Any(), int64(4), []int64{1, 2}).Return(nil)
	f.repo.EXPECT().DetachPermissions(gomock.Any(), int64(4), []int64{2}).Return(nil)

	require.NoError(t, f.svc.AttachPermissions(ctx, 4, []int64{1, 2}))
	require.NoError(t, f.svc.DetachPermissions(ctx, 4, []int64{2}))

	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, "feature.permissions.attach", f.audit.entries[0].Action)
	assert.Equal(t, "feature.permissions.detach", f.audit.entries[1].Action)
}

func TestService_Delete(t *testing.T) {
	f := setup(t)
	f.repo.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), 4))
	assert.Equal(t, "feature.delete", f.audit.entries[0].Action)
}

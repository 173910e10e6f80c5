package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resto-admin/internal/audit"
	catalogerrors "resto-admin/internal/catalog/errors"
	"resto-admin/internal/platform"
	"resto-admin/internal/shared/cache"
	"resto-admin/internal/shared/contextutil"

	"go.uber.org/zap"
)

const CacheKeyPrefix = "catalog:"

// forwardedQuery is the set of list parameters passed to the platform.
var forwardedQuery = []string{"q", "page", "limit"}

type Service interface {
	List(ctx context.Context, res Resource, query url.Values) (platform.Payload, error)
	Get(ctx context.Context, res Resource, id int64) (platform.Payload, error)
	GetByCode(ctx context.Context, res Resource, code string) (platform.Payload, error)
	Create(ctx context.Context, res Resource, body json.RawMessage) (platform.Payload, error)
	Update(ctx context.Context, res Resource, id int64, body json.RawMessage) (platform.Payload, error)
	Delete(ctx context.Context, res Resource, id int64) error
	Invalidate(ctx context.Context, name string)
}

type service struct {
	api    platform.Requester
	cache  *cache.Cache
	ttl    time.Duration
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(api platform.Requester, c *cache.Cache, ttl time.Duration, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &service{
		api:    api,
		cache:  c,
		ttl:    ttl,
		audit:  recorder,
		logger: zap.L().Named("catalog.service"),
	}
}

func filterQuery(in url.Values) url.Values {
	out := url.Values{}
	for _, k := range forwardedQuery {
		if v := strings.TrimSpace(in.Get(k)); v != "" {
			out.Set(k, v)
		}
	}
	return out
}

func itemPath(res Resource, id int64) string {
	return fmt.Sprintf("%s/%d", res.Remote, id)
}

func notFound(err error) error {
	if platform.IsStatus(err, http.StatusNotFound) {
		return catalogerrors.ErrRecordNotFound
	}
	return err
}

func validBody(body json.RawMessage) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return catalogerrors.ErrInvalidBody
	}
	return nil
}

func (s *service) List(ctx context.Context, res Resource, query url.Values) (platform.Payload, error) {
	q := filterQuery(query)
	load := func(ctx context.Context) (platform.Payload, error) {
		return s.api.Raw(ctx, http.MethodGet, res.Remote, q, nil)
	}

	if res.Cacheable && len(q) == 0 {
		return cache.GetOrLoad(ctx, s.cache, res.cacheKey(), s.ttl, load)
	}
	return load(ctx)
}

func (s *service) Get(ctx context.Context, res Resource, id int64) (platform.Payload, error) {
	p, err := s.api.Raw(ctx, http.MethodGet, itemPath(res, id), nil, nil)
	return p, notFound(err)
}

func (s *service) GetByCode(ctx context.Context, res Resource, code string) (platform.Payload, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return platform.Payload{}, catalogerrors.ErrInvalidCode
	}
	p, err := s.api.Raw(ctx, http.MethodGet, res.Remote+"/code/"+url.PathEscape(code), nil, nil)
	return p, notFound(err)
}

func (s *service) Create(ctx context.Context, res Resource, body json.RawMessage) (platform.Payload, error) {
	if err := validBody(body); err != nil {
		return platform.Payload{}, err
	}
	p, err := s.api.Raw(ctx, http.MethodPost, res.Remote, nil, body)
	if err != nil {
		return platform.Payload{}, err
	}

	s.afterWrite(ctx, res, "create", createdID(p.Data), body)
	return p, nil
}

func (s *service) Update(ctx context.Context, res Resource, id int64, body json.RawMessage) (platform.Payload, error) {
	if err := validBody(body); err != nil {
		return platform.Payload{}, err
	}
	p, err := s.api.Raw(ctx, http.MethodPut, itemPath(res, id), nil, body)
	if err != nil {
		return platform.Payload{}, notFound(err)
	}

	s.afterWrite(ctx, res, "update", audit.ID(id), body)
	return p, nil
}

func (s *service) Delete(ctx context.Context, res Resource, id int64) error {
	if _, err := s.api.Raw(ctx, http.MethodDelete, itemPath(res, id), nil, nil); err != nil {
		return notFound(err)
	}

	s.afterWrite(ctx, res, "delete", audit.ID(id), nil)
	return nil
}

// Invalidate drops the cached list of the named resource. Unknown names are ignored.
func (s *service) Invalidate(ctx context.Context, name string) {
	if res, ok := Lookup(name); ok && res.Cacheable {
		s.cache.Invalidate(ctx, res.cacheKey())
	}
}

func (s *service) afterWrite(ctx context.Context, res Resource, verb, id string, body json.RawMessage) {
	if res.Cacheable {
		s.cache.Invalidate(ctx, res.cacheKey())
	}

	var payload any
	if len(body) > 0 {
		payload = body
	}
	action := res.Name + "." + verb
	if err := s.audit.Record(ctx, audit.Entry{
		Action:     action,
		Resource:   res.Name,
		ResourceID: id,
		Payload:    payload,
	}); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed", zap.String("action", action), zap.Error(err))
	}
}

// createdID reads the id of a record the platform just created. It returns "" when the response
// carries none.
func createdID(data json.RawMessage) string {
	var idOnly struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(data, &idOnly); err != nil {
		return ""
	}
	return idOnly.ID.String()
}

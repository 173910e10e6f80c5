// Package platform is the client for the remote platform REST API that owns every admin record.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resto-admin/internal/config"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/contextutil"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Requester is the narrow surface module repositories depend on.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, body, out any) error
	Raw(ctx context.Context, method, path string, query url.Values, body any) (Payload, error)
}

// Payload is an undecoded response: the unwrapped data plus the envelope meta, if any.
type Payload struct {
	Status int
	Data   json.RawMessage
	Meta   json.RawMessage
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg config.PlatformConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.L()
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryIdempotent).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: client, logger: logger.Named("platform.client")}
}

// retryIdempotent retries GETs that failed in transport or with a 5xx. Writes are never replayed.
func retryIdempotent(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	p, err := c.Raw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(p.Data) == 0 || bytes.Equal(p.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(p.Data, out); err != nil {
		c.logger.Error("decode platform response failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperror.ErrUpstream.WithErr(fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

func (c *Client) Raw(ctx context.Context, method, path string, query url.Values, body any) (Payload, error) {
	log := contextutil.GetLogger(ctx, c.logger).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	req := c.http.R().SetContext(ctx)
	if token := contextutil.GetAccessToken(ctx); token != "" {
		req.SetAuthToken(token)
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.SetHeader("X-Request-ID", rid)
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return Payload{}, ctx.Err()
		}
		log.Error("platform call failed", zap.Error(err))
		return Payload{}, apperror.ErrServiceUnavailable.WithErr(err)
	}

	log.Debug("platform call",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("took", time.Since(start)),
	)

	if resp.IsError() {
		appErr := mapStatus(resp.StatusCode(), resp.Body())
		log.Warn("platform call rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
		)
		return Payload{}, appErr
	}

	data, meta := unwrap(resp.Body())
	return Payload{Status: resp.StatusCode(), Data: data, Meta: meta}, nil
}

// envelope covers the platform's {data, meta} wrapper. Bodies without a data key are returned as-is.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

func unwrap(body []byte) (json.RawMessage, json.RawMessage) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return trimmed, nil
	}
	data, ok := fields["data"]
	if !ok {
		return trimmed, nil
	}
	return data, fields["meta"]
}

// remoteError is the platform's error body. message may be a string or a list of validation messages.
type remoteError struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
	Field   string          `json:"field"`
}

func (e remoteError) text() string {
	if len(e.Message) == 0 {
		return e.Error
	}
	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(e.Message, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return e.Error
}

func mapStatus(status int, body []byte) *apperror.AppError {
	var re remoteError
	_ = json.Unmarshal(body, &re)
	msg := re.text()

	var base *apperror.AppError
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		base = apperror.ErrInvalidInput
	case http.StatusUnauthorized:
		base = apperror.ErrUnauthorized
	case http.StatusForbidden:
		base = apperror.ErrForbidden
	case http.StatusNotFound:
		base = apperror.ErrNotFound
	case http.StatusConflict:
		base = apperror.New(apperror.CodeConflict, "Resource already exists", http.StatusConflict)
	case http.StatusTooManyRequests:
		base = apperror.New(apperror.CodeRateLimited, "Too many requests", http.StatusTooManyRequests)
	default:
		base = apperror.ErrUpstream
	}

	out := *base
	out.Err = fmt.Errorf("platform status %d", status)
	if msg != "" && status < http.StatusInternalServerError {
		out.Message = msg
	}
	out.Field = re.Field
	return &out
}

// IsStatus reports whether err came from a platform response with the given HTTP status.
func IsStatus(err error, status int) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus == status
}

// ConflictField names the input field a platform 409 refers to: the field the platform reports, or
// "email"/"username" when the message mentions one. ok is false for anything but a conflict.
func ConflictField(err error) (field string, ok bool) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusConflict {
		return "", false
	}
	if appErr.Field != "" {
		return strings.ToLower(appErr.Field), true
	}
	msg := strings.ToLower(appErr.Message)
	switch {
	case strings.Contains(msg, "email"):
		return "email", true
	case strings.Contains(msg, "username"):
		return "username", true
	}
	return "", true
}
